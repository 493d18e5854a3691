// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/imu_visualizer/internal/config"
	"github.com/relabs-tech/imu_visualizer/internal/ingest"
	"github.com/relabs-tech/imu_visualizer/internal/orientation"
	"github.com/relabs-tech/imu_visualizer/internal/telemetry"
	"github.com/relabs-tech/imu_visualizer/internal/transport"
	"github.com/relabs-tech/imu_visualizer/internal/visualizer"
)

// RunVisualizer opens the serial device and runs the telemetry pipeline
// until an interrupt is received.
func RunVisualizer(device string) error {
	cfg := config.Get()

	port, err := transport.OpenSerial(device, cfg.SerialBaudRate)
	if err != nil {
		return err
	}
	log.Printf("visualizer: serial port opened on %s at %d baud", device, cfg.SerialBaudRate)

	return runPipeline(port)
}

// RunReplay drives the same pipeline from a recorded telemetry file
// instead of a live serial port.
func RunReplay(path string) error {
	cfg := config.Get()

	src, err := transport.NewReplaySource(path, time.Duration(cfg.ReplayInterval)*time.Millisecond)
	if err != nil {
		return err
	}
	log.Printf("replay: feeding %s at one line per %dms", path, cfg.ReplayInterval)

	return runPipeline(src)
}

// runPipeline wires transport → ingest → cell → presentation loop and
// owns the shutdown sequencing: the presentation loop exits first, then
// the ingest goroutine is told to stop and joined, and only then is the
// transport closed.
func runPipeline(src io.ReadCloser) error {
	cfg := config.Get()

	perm, err := orientation.ParsePermutation(cfg.AxisPermutation)
	if err != nil {
		return fmt.Errorf("visualizer: %w", err)
	}

	cell := telemetry.NewCell()
	ing := ingest.New(cell)

	var sinks []visualizer.Sink
	var closers []func()

	if cfg.SinkConsole {
		sinks = append(sinks, visualizer.NewConsoleSink(os.Stdout))
	}
	if cfg.SinkMQTT {
		mqttSink, err := visualizer.NewMQTTSink(cfg.MQTTBroker, cfg.MQTTClientIDVisualizer, cfg.TopicPose)
		if err != nil {
			return fmt.Errorf("visualizer: mqtt sink: %w", err)
		}
		sinks = append(sinks, mqttSink)
		closers = append(closers, mqttSink.Close)
	}
	if cfg.SinkOLED {
		oled, err := visualizer.NewOLEDSink()
		if err != nil {
			return fmt.Errorf("visualizer: oled sink: %w", err)
		}
		sinks = append(sinks, oled)
		closers = append(closers, func() { oled.Close() })
	}

	loop := visualizer.New(cell, perm, time.Duration(cfg.RenderTickInterval)*time.Millisecond, sinks...)

	if cfg.WebEnabled {
		hub := visualizer.NewWebsocketHub()
		horizon := visualizer.NewHorizonSink()
		loop.AddSink(hub)
		loop.AddSink(horizon)
		closers = append(closers, hub.Close)
		startWebServer(loop, ing, hub, horizon, cfg.WebServerPort)
	}

	// Ingest runs on its own goroutine; it is the only owner of the
	// transport handle until it returns.
	ingestCtx, stopIngest := context.WithCancel(context.Background())
	defer stopIngest()
	ingestDone := make(chan error, 1)
	go func() {
		ingestDone <- ing.Run(ingestCtx, src)
	}()

	// The render loop runs here until a close request arrives.
	renderCtx, stopRender := context.WithCancel(context.Background())
	defer stopRender()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("visualizer: close requested, shutting down")
		stopRender()
	}()

	if err := loop.Run(renderCtx); err != nil {
		log.Printf("visualizer: render loop: %v", err)
	}

	// Stop flag first, then join. A blocking read in progress is not
	// interrupted; the join completes once it returns, and the
	// transport is not closed until then.
	stopIngest()
	if err := <-ingestDone; err != nil {
		log.Printf("visualizer: %v", err)
	}
	if err := src.Close(); err != nil {
		log.Printf("visualizer: transport close: %v", err)
	}

	for _, cl := range closers {
		cl()
	}

	stats := ing.Stats()
	log.Printf("visualizer: done (%d frames, %d published, %d dropped)",
		stats.Frames, stats.Published, stats.Dropped)
	return nil
}
