package visualizer

import (
	"fmt"
	"io"
)

// ConsoleSink prints a pose readout per tick, in the same format the
// MQTT console subscriber uses.
type ConsoleSink struct {
	w       io.Writer
	waiting bool
}

// NewConsoleSink writes pose lines to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Render(pose RenderPose) error {
	if !pose.Live {
		if !s.waiting {
			s.waiting = true
			_, err := fmt.Fprintln(s.w, "[POSE]  waiting for telemetry...")
			return err
		}
		return nil
	}

	_, err := fmt.Fprintf(s.w,
		"[POSE]  ROLL=%6.2f  PITCH=%6.2f  YAW=%6.2f  (w=%.3f x=%.3f y=%.3f z=%.3f)\n",
		pose.Euler.Roll, pose.Euler.Pitch, pose.Euler.Yaw,
		pose.Orientation.W, pose.Orientation.X, pose.Orientation.Y, pose.Orientation.Z,
	)
	return err
}
