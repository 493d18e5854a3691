// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/relabs-tech/imu_visualizer/internal/telemetry"
	"github.com/relabs-tech/imu_visualizer/internal/transport"
)

// Stats is a point-in-time copy of the loop's counters.
type Stats struct {
	Frames     uint64 `json:"frames"`
	Published  uint64 `json:"published"`
	Dropped    uint64 `json:"dropped"`
	Quaternion uint64 `json:"quaternion"`
	Angles     uint64 `json:"angles"`
	NMEA       uint64 `json:"nmea"`
}

// Loop reads framed telemetry lines from a transport, decodes them and
// publishes good samples to the shared cell. It is the cell's sole
// writer. Decode failures are dropped without propagating: the next
// line supersedes a corrupt one, and the presentation side simply holds
// the last good sample.
type Loop struct {
	cell *telemetry.Cell

	frames     atomic.Uint64
	published  atomic.Uint64
	dropped    atomic.Uint64
	quaternion atomic.Uint64
	angles     atomic.Uint64
	nmea       atomic.Uint64
}

// New returns a loop publishing into cell.
func New(cell *telemetry.Cell) *Loop {
	return &Loop{cell: cell}
}

// Run reads frames from r until EOF, a transport error, or ctx
// cancellation. Cancellation is observed at each loop head: a blocking
// read already in progress is not interrupted, so shutdown latency is
// bounded by one line's arrival time. EOF is a clean exit.
func (l *Loop) Run(ctx context.Context, r io.Reader) error {
	lr := transport.NewLineReader(r)

	for {
		if ctx.Err() != nil {
			log.Printf("ingest: stop requested, exiting after %d frames", l.frames.Load())
			return nil
		}

		frame, err := lr.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Printf("ingest: transport closed after %d frames", l.frames.Load())
				return nil
			}
			return fmt.Errorf("ingest: transport read: %w", err)
		}
		l.frames.Add(1)

		sample, err := telemetry.Decode(frame)
		if err != nil {
			// Telemetry streams tolerate occasional corrupt frames; note
			// it in the counters and move on.
			if n := l.dropped.Add(1); n%100 == 1 {
				log.Printf("ingest: dropped frame (%d total): %v", n, err)
			}
			continue
		}

		l.cell.Publish(sample)
		l.published.Add(1)
		switch sample.Format {
		case telemetry.FormatQuaternion:
			l.quaternion.Add(1)
		case telemetry.FormatAngles:
			l.angles.Add(1)
		case telemetry.FormatNMEA:
			l.nmea.Add(1)
		}
	}
}

// Stats returns a snapshot of the counters. Safe to call from any
// goroutine while Run is active.
func (l *Loop) Stats() Stats {
	return Stats{
		Frames:     l.frames.Load(),
		Published:  l.published.Load(),
		Dropped:    l.dropped.Load(),
		Quaternion: l.quaternion.Load(),
		Angles:     l.angles.Load(),
		NMEA:       l.nmea.Load(),
	}
}
