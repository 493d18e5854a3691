package telemetry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
)

func TestCellInitialSnapshot(t *testing.T) {
	t.Parallel()

	cell := NewCell()
	s, ok := cell.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, orientation.Identity(), s.Orientation)
}

func TestCellPublishOverwrites(t *testing.T) {
	t.Parallel()

	cell := NewCell()

	first := Sample{Orientation: orientation.Quaternion{W: 1}, Format: FormatQuaternion}
	second := Sample{Orientation: orientation.FromTiltAngles(30, -15), Format: FormatAngles}

	cell.Publish(first)
	s, ok := cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, first, s)

	cell.Publish(second)
	s, ok = cell.Snapshot()
	require.True(t, ok)
	assert.Equal(t, second, s)
}

// TestCellNoTornReads interleaves a publisher with readers. Every
// published sample has all four quaternion components equal to the same
// sequence number, so a reader that ever observes mixed components has
// caught a torn read.
func TestCellNoTornReads(t *testing.T) {
	t.Parallel()

	cell := NewCell()
	const publishes = 10000
	const readers = 4

	var wg sync.WaitGroup
	wg.Add(readers + 1)

	go func() {
		defer wg.Done()
		for i := 1; i <= publishes; i++ {
			v := float64(i)
			cell.Publish(Sample{
				Orientation: orientation.Quaternion{W: v, X: v, Y: v, Z: v},
				Format:      FormatQuaternion,
			})
		}
	}()

	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			last := 0.0
			for i := 0; i < publishes; i++ {
				s, ok := cell.Snapshot()
				q := s.Orientation
				if !ok {
					continue
				}
				if q.W != q.X || q.W != q.Y || q.W != q.Z {
					t.Errorf("torn read: %+v", q)
					return
				}
				// publications are observed in order; the reader may
				// skip values but must never go backwards
				if q.W < last {
					t.Errorf("snapshot went backwards: %v after %v", q.W, last)
					return
				}
				last = q.W
			}
		}()
	}

	wg.Wait()
}
