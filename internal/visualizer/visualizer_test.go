// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package visualizer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
	"github.com/relabs-tech/imu_visualizer/internal/telemetry"
)

// captureSink records every pose it is handed.
type captureSink struct {
	mu    sync.Mutex
	poses []RenderPose
	seen  chan struct{}
}

func newCaptureSink(buffer int) *captureSink {
	return &captureSink{seen: make(chan struct{}, buffer)}
}

func (s *captureSink) Render(pose RenderPose) error {
	s.mu.Lock()
	s.poses = append(s.poses, pose)
	s.mu.Unlock()
	select {
	case s.seen <- struct{}{}:
	default:
	}
	return nil
}

func (s *captureSink) all() []RenderPose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RenderPose(nil), s.poses...)
}

func TestSnapshotBeforeFirstSample(t *testing.T) {
	t.Parallel()

	cell := telemetry.NewCell()
	loop := New(cell, orientation.IdentityPermutation(), time.Millisecond)

	pose := loop.Snapshot()
	assert.False(t, pose.Live)
	assert.Equal(t, orientation.Identity(), pose.Orientation)
	assert.InDelta(t, 0, pose.Euler.Roll, 1e-12)
}

func TestSnapshotAppliesPermutation(t *testing.T) {
	t.Parallel()

	cell := telemetry.NewCell()
	perm, err := orientation.ParsePermutation("x,-z,y")
	require.NoError(t, err)
	loop := New(cell, perm, time.Millisecond)

	cell.Publish(telemetry.Sample{
		Orientation: orientation.Quaternion{W: 1, X: 0.1, Y: 0.2, Z: 0.3},
		Format:      telemetry.FormatQuaternion,
	})

	pose := loop.Snapshot()
	assert.True(t, pose.Live)
	assert.Equal(t, orientation.Quaternion{W: 1, X: 0.1, Y: -0.3, Z: 0.2}, pose.Orientation)
}

func TestSnapshotAngleFormIsDegreeConverted(t *testing.T) {
	t.Parallel()

	cell := telemetry.NewCell()
	loop := New(cell, orientation.IdentityPermutation(), time.Millisecond)

	cell.Publish(telemetry.Sample{
		Orientation: orientation.FromTiltAngles(30, 0),
		Format:      telemetry.FormatAngles,
	})

	pose := loop.Snapshot()
	assert.Equal(t, telemetry.FormatAngles, pose.Format)
	assert.InDelta(t, 30.0, pose.Euler.Roll, 1e-9)
}

func TestRenderPoseMatrix(t *testing.T) {
	t.Parallel()

	pose := RenderPose{Orientation: orientation.Identity()}
	m := pose.Matrix()
	assert.InDelta(t, 1.0, m[0][0], 1e-12)
	assert.InDelta(t, 1.0, m[1][1], 1e-12)
	assert.InDelta(t, 1.0, m[2][2], 1e-12)
}

// TestLoopLastValueHold runs the loop with no new telemetry and checks
// that the same sample is repeated across ticks rather than dropped.
func TestLoopLastValueHold(t *testing.T) {
	t.Parallel()

	cell := telemetry.NewCell()
	sample := telemetry.Sample{
		Orientation: orientation.FromTiltAngles(10, 20),
		Format:      telemetry.FormatAngles,
	}
	cell.Publish(sample)

	sink := newCaptureSink(4)
	loop := New(cell, orientation.IdentityPermutation(), time.Millisecond, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	// wait for a few ticks
	for i := 0; i < 3; i++ {
		select {
		case <-sink.seen:
		case <-time.After(2 * time.Second):
			t.Fatal("render tick did not arrive")
		}
	}
	cancel()
	require.NoError(t, <-done)

	poses := sink.all()
	require.GreaterOrEqual(t, len(poses), 3)
	for _, p := range poses {
		assert.True(t, p.Live)
		assert.Equal(t, sample.Orientation, p.Orientation)
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	t.Parallel()

	loop := New(telemetry.NewCell(), orientation.IdentityPermutation(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, loop.Run(ctx))
}
