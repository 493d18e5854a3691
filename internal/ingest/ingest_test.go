// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package ingest

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
	"github.com/relabs-tech/imu_visualizer/internal/telemetry"
)

func runToEOF(t *testing.T, input string) (*Loop, *telemetry.Cell) {
	t.Helper()
	cell := telemetry.NewCell()
	loop := New(cell)
	require.NoError(t, loop.Run(context.Background(), strings.NewReader(input)))
	return loop, cell
}

func TestRunPublishesQuaternionLine(t *testing.T) {
	t.Parallel()

	loop, cell := runToEOF(t, "w = 1.0 x = 0.0 y = 0.0 z = 0.0\n")

	s, ok := cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, orientation.Identity(), s.Orientation)
	assert.Equal(t, telemetry.FormatQuaternion, s.Format)

	stats := loop.Stats()
	assert.Equal(t, uint64(1), stats.Frames)
	assert.Equal(t, uint64(1), stats.Published)
	assert.Equal(t, uint64(1), stats.Quaternion)
	assert.Zero(t, stats.Dropped)
}

func TestRunPublishesLegacyAngleLine(t *testing.T) {
	t.Parallel()

	_, cell := runToEOF(t, "Ang.x = 30\t\tAng.y = -15\n")

	s, ok := cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, orientation.FromTiltAngles(30, -15), s.Orientation)
	assert.Equal(t, telemetry.FormatAngles, s.Format)
}

func TestRunDropsGarbageSilently(t *testing.T) {
	t.Parallel()

	loop, cell := runToEOF(t, "garbage\nw = 0.5 x = 0.5 y = 0.5 z = 0.5\n")

	// the garbage line produced no observable state; the valid line won
	s, ok := cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, orientation.Quaternion{W: 0.5, X: 0.5, Y: 0.5, Z: 0.5}, s.Orientation)

	stats := loop.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, uint64(1), stats.Published)
	assert.Equal(t, uint64(1), stats.Dropped)
}

func TestRunGarbageOnlyLeavesCellUntouched(t *testing.T) {
	t.Parallel()

	_, cell := runToEOF(t, "garbage\nw = 1.0 x = nope\n\n")

	s, ok := cell.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, orientation.Identity(), s.Orientation)
}

func TestRunLatestWins(t *testing.T) {
	t.Parallel()

	_, cell := runToEOF(t, "Ang.x = 1 Ang.y = 1\nAng.x = 2 Ang.y = 2\nAng.x = 3 Ang.y = 3\n")

	s, ok := cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, orientation.FromTiltAngles(3, 3), s.Orientation)
}

func TestRunEOFIsCleanExit(t *testing.T) {
	t.Parallel()

	cell := telemetry.NewCell()
	loop := New(cell)
	err := loop.Run(context.Background(), strings.NewReader(""))
	assert.NoError(t, err)
}

// TestRunStopAfterBlockingRead checks the shutdown contract: a cancel
// while a blocking read is in progress takes effect once that read
// completes, and Run returns without the transport being closed first.
func TestRunStopAfterBlockingRead(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	cell := telemetry.NewCell()
	loop := New(cell)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx, pr)
	}()

	// give the loop time to pass the head check and block on the read
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		t.Fatal("loop exited while a blocking read should be in progress")
	case <-time.After(50 * time.Millisecond):
	}

	// completing one line lets the loop observe the stop flag
	_, err := pw.Write([]byte("w = 1.0 x = 0.0 y = 0.0 z = 0.0\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after the in-flight read returned")
	}
}
