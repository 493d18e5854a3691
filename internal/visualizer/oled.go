// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package visualizer

import (
	"fmt"
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// OLEDSink shows the pose readout on an SSD1306 over I2C, the same
// 128x64 panel layout the inertial computer uses.
type OLEDSink struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// NewOLEDSink initializes periph, opens the default I2C bus and brings
// up the display. ssd1306.NewI2C always talks to slave address 0x3C,
// so there is no address to configure here.
func NewOLEDSink() (*OLEDSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("oled: periph host init: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("oled: open I2C bus: %w", err)
	}

	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("oled: init display: %w", err)
	}
	log.Printf("oled: display initialized on %s", bus)

	return &OLEDSink{bus: bus, dev: dev}, nil
}

func (s *OLEDSink) Render(pose RenderPose) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !pose.Live {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawString("Orientation")
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawString("Waiting...")
	} else {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawString(fmt.Sprintf("R: %6.1f", pose.Euler.Roll))
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawString(fmt.Sprintf("P: %6.1f", pose.Euler.Pitch))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawString(fmt.Sprintf("Y: %6.1f", pose.Euler.Yaw))
	}

	return s.dev.Draw(s.dev.Bounds(), img, image.Point{})
}

// Close releases the I2C bus.
func (s *OLEDSink) Close() error {
	return s.bus.Close()
}
