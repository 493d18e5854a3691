// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package telemetry

import (
	"sync/atomic"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
)

// Cell is a single-slot handoff between the ingest goroutine (sole
// writer) and the presentation loop (reader). Publish overwrites the
// previous sample; Snapshot returns whichever sample was most recently
// published, whole. Neither side ever blocks the other: the sample is
// stored behind an atomic pointer swap, so a reader always sees a fully
// formed value from exactly one publication, never a mix of two.
type Cell struct {
	latest atomic.Pointer[Sample]
}

// NewCell returns a cell holding no sample yet; Snapshot reports the
// identity orientation until the first Publish.
func NewCell() *Cell {
	return &Cell{}
}

// Publish stores s as the latest sample. The sample is copied; the
// caller may reuse its value.
func (c *Cell) Publish(s Sample) {
	c.latest.Store(&s)
}

// Snapshot returns the latest published sample and true, or the
// identity-orientation sentinel and false if nothing has been published.
func (c *Cell) Snapshot() (Sample, bool) {
	p := c.latest.Load()
	if p == nil {
		return identitySample(), false
	}
	return *p, true
}

func identitySample() Sample {
	return Sample{Orientation: orientation.Identity(), Format: FormatQuaternion}
}
