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

	path := flag.Arg(0)
	if path == "" {
		fmt.Printf("usage: %s [-config file] <recording>\n", os.Args[0])
		return
	}

	log.Println("starting imu-visualizer (replay → pose)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunReplay(path); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
