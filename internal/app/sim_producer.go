// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/imu_visualizer/internal/config"
	"github.com/relabs-tech/imu_visualizer/internal/orientation"
	"github.com/relabs-tech/imu_visualizer/internal/transport"
)

// RunSimProducer writes synthetic telemetry lines to the target device
// (or stdout when target is "-"), exercising the visualizer without an
// IMU attached. format is "quaternion" or "angles", matching the two
// wire grammars.
func RunSimProducer(target, format string) error {
	cfg := config.Get()

	var out io.Writer
	if target == "-" {
		out = os.Stdout
	} else {
		port, err := transport.OpenSerial(target, cfg.SerialBaudRate)
		if err != nil {
			return err
		}
		defer port.Close()
		log.Printf("sim: writing to %s at %d baud", target, cfg.SerialBaudRate)
		out = port
	}

	src := orientation.NewMockSource()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			log.Println("sim: shutting down")
			return nil
		case <-ticker.C:
			q, err := src.Next()
			if err != nil {
				log.Printf("sim: mock source error: %v", err)
				continue
			}

			var line string
			switch format {
			case "angles":
				pose := q.Pose()
				line = fmt.Sprintf("Ang.x = %d\t\tAng.y = %d\n",
					int(math.Round(pose.Roll)), int(math.Round(pose.Pitch)))
			default:
				line = fmt.Sprintf("w = %f x = %f y = %f z = %f\n", q.W, q.X, q.Y, q.Z)
			}

			if _, err := io.WriteString(out, line); err != nil {
				return fmt.Errorf("sim: write: %w", err)
			}
		}
	}
}
