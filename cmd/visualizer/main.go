// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/relabs-tech/imu_visualizer/internal/app"
	"github.com/relabs-tech/imu_visualizer/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	device := flag.Arg(0)
	if device == "" {
		fmt.Printf("No serial port indicated\nusage: %s [-config file] <device>\n", os.Args[0])
		return
	}

	log.Println("starting imu-visualizer (serial → pose)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunVisualizer(device); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
