// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	horizonWidth  = 256
	horizonHeight = 128
)

// HorizonSink renders an artificial horizon with a numeric pose readout
// into an off-screen image each tick. The web app serves the latest
// frame as a PNG.
type HorizonSink struct {
	mu    sync.RWMutex
	frame *image.RGBA
}

// NewHorizonSink returns a sink holding a blank frame.
func NewHorizonSink() *HorizonSink {
	return &HorizonSink{frame: image.NewRGBA(image.Rect(0, 0, horizonWidth, horizonHeight))}
}

// Frame returns the most recently rendered image. The returned image is
// never mutated after publication; each Render swaps in a fresh one.
func (s *HorizonSink) Frame() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *HorizonSink) Render(pose RenderPose) error {
	img := image.NewRGBA(image.Rect(0, 0, horizonWidth, horizonHeight))

	sky := color.RGBA{R: 40, G: 90, B: 160, A: 255}
	ground := color.RGBA{R: 110, G: 70, B: 30, A: 255}
	line := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	rollRad := pose.Euler.Roll * math.Pi / 180.0
	// 1 pixel per degree of pitch, positive pitch raises the horizon
	pitchOffset := pose.Euler.Pitch

	cx := float64(horizonWidth) / 2
	cy := float64(horizonHeight)/2 + pitchOffset
	slope := math.Tan(rollRad)

	for x := 0; x < horizonWidth; x++ {
		boundary := cy + (float64(x)-cx)*slope
		for y := 0; y < horizonHeight; y++ {
			if float64(y) < boundary {
				img.Set(x, y, sky)
			} else {
				img.Set(x, y, ground)
			}
		}
		// horizon line itself
		by := int(boundary)
		if by >= 0 && by < horizonHeight {
			img.Set(x, by, line)
		}
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(line),
		Face: basicfont.Face7x13,
	}

	if !pose.Live {
		drawer.Dot = fixed.P(8, 26)
		drawer.DrawString("Waiting for telemetry...")
	} else {
		drawer.Dot = fixed.P(8, 13)
		drawer.DrawString(poseLabel("R", pose.Euler.Roll))
		drawer.Dot = fixed.P(8, 26)
		drawer.DrawString(poseLabel("P", pose.Euler.Pitch))
		drawer.Dot = fixed.P(8, 39)
		drawer.DrawString(poseLabel("Y", pose.Euler.Yaw))
	}

	s.mu.Lock()
	s.frame = img
	s.mu.Unlock()
	return nil
}

func poseLabel(name string, deg float64) string {
	return fmt.Sprintf("%s: %6.1f", name, deg)
}
