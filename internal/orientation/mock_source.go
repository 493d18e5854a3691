// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package orientation

import (
	"math"
	"time"
)

// Source is anything that can provide orientations over time: a mock
// source, the telemetry pipeline, a replay source from file, etc.
type Source interface {
	Next() (Quaternion, error)
}

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock orientation source that
// generates smooth changing values.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (Quaternion, error) {
	elapsed := time.Since(m.start).Seconds()

	roll := 20 * math.Sin(elapsed)
	pitch := 15 * math.Cos(elapsed*0.7)
	yaw := math.Mod(elapsed*30, 360)

	return FromEulerDegrees(roll, pitch, yaw), nil
}
