// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package visualizer

import (
	"context"
	"log"
	"time"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
	"github.com/relabs-tech/imu_visualizer/internal/telemetry"
)

// RenderPose is one orientation snapshot mapped into the render-world
// frame, handed to every sink once per tick.
type RenderPose struct {
	Orientation orientation.Quaternion `json:"orientation"`
	Euler       orientation.Pose       `json:"euler"`
	Format      telemetry.Format       `json:"format"`
	// Live is false until the first telemetry sample has arrived; sinks
	// render the identity pose (or a waiting notice) until then.
	Live bool `json:"live"`
}

// Matrix returns the row-major rotation matrix for the pose, for sinks
// that drive a 3D transform directly.
func (p RenderPose) Matrix() [3][3]float64 {
	return p.Orientation.RotationMatrix()
}

// Sink consumes one rendered pose per tick. Render errors are logged by
// the loop and do not stop rendering.
type Sink interface {
	Render(RenderPose) error
}

// Loop drives the sinks at a fixed cadence, decoupled from the
// telemetry arrival rate. Each tick snapshots the shared cell and
// renders whatever is latest, repeating the previous sample when
// nothing new has arrived (last-value-hold, no interpolation).
type Loop struct {
	cell     *telemetry.Cell
	perm     orientation.Permutation
	interval time.Duration
	sinks    []Sink
}

// New builds a presentation loop. perm remaps the sensor frame into the
// render-world frame; interval is the render tick period.
func New(cell *telemetry.Cell, perm orientation.Permutation, interval time.Duration, sinks ...Sink) *Loop {
	return &Loop{cell: cell, perm: perm, interval: interval, sinks: sinks}
}

// AddSink registers another sink. Must be called before Run.
func (l *Loop) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("visualizer: render loop stopped")
			return nil
		case <-ticker.C:
			l.renderOnce()
		}
	}
}

// Snapshot maps the cell's current sample into a RenderPose without
// rendering it; the web API serves this directly.
func (l *Loop) Snapshot() RenderPose {
	sample, live := l.cell.Snapshot()
	q := l.perm.Apply(sample.Orientation)
	return RenderPose{
		Orientation: q,
		Euler:       q.Pose(),
		Format:      sample.Format,
		Live:        live,
	}
}

func (l *Loop) renderOnce() {
	pose := l.Snapshot()
	for _, sink := range l.sinks {
		if err := sink.Render(pose); err != nil {
			log.Printf("visualizer: sink error: %v", err)
		}
	}
}
