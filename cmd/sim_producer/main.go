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
	format := flag.String("format", "quaternion", `wire format to emit: "quaternion" or "angles"`)
	flag.Parse()

	target := flag.Arg(0)
	if target == "" {
		fmt.Printf("usage: %s [-config file] [-format quaternion|angles] <device|->\n", os.Args[0])
		return
	}

	log.Println("starting imu-visualizer telemetry simulator")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunSimProducer(target, *format); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
