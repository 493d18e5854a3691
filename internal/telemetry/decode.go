// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package telemetry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/imu_visualizer/internal/orientation"
)

// Decode failure taxonomy. Callers match these with errors.Is; the
// ingest loop drops the line either way, but counters and tests care
// about the distinction.
var (
	// ErrMalformed: the line looks like a known format but one or more
	// required fields are missing or unparseable. Also covers empty lines.
	ErrMalformed = errors.New("malformed telemetry line")
	// ErrIncomplete: a strict prefix of the required fields parsed.
	ErrIncomplete = errors.New("incomplete telemetry line")
	// ErrUnknownFormat: the line matches none of the supported grammars.
	ErrUnknownFormat = errors.New("unknown telemetry format")
)

// Format identifies which wire grammar produced a sample.
type Format string

const (
	// FormatQuaternion is the current firmware output:
	// "w = %f x = %f y = %f z = %f"
	FormatQuaternion Format = "quaternion"
	// FormatAngles is the legacy two-axis tilt output:
	// "Ang.x = %d\t\tAng.y = %d"
	FormatAngles Format = "angles"
	// FormatNMEA is a $PASHR attitude sentence (roll/pitch/heading).
	FormatNMEA Format = "nmea"
)

// Sample is one successfully decoded orientation reading.
type Sample struct {
	Orientation orientation.Quaternion
	Format      Format
}

// Decode turns one framed telemetry line into a Sample. Formats are
// attempted in order: quaternion, legacy angle pair, NMEA $PASHR. The
// first grammar whose leading token matches claims the line; a claimed
// line that fails to parse fully is an error, never a fallthrough to
// the next grammar (a malformed quaternion line must not be
// misclassified as something else).
//
// Decode is deterministic and side-effect-free.
func Decode(line string) (Sample, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Sample{}, fmt.Errorf("%w: empty line", ErrMalformed)
	}

	switch {
	case strings.HasPrefix(line, "w"):
		return decodeQuaternion(line)
	case strings.HasPrefix(line, "Ang."):
		return decodeAngles(line)
	case strings.HasPrefix(line, "$"):
		return decodeNMEA(line)
	}
	return Sample{}, fmt.Errorf("%w: %.32q", ErrUnknownFormat, line)
}

// decodeQuaternion parses "w = <f> x = <f> y = <f> z = <f>" with
// whitespace-tolerant separators. All four fields must parse as finite
// floats; the parsed tokens round-trip exactly into the sample.
func decodeQuaternion(line string) (Sample, error) {
	var w, x, y, z float64
	n, err := fmt.Sscanf(line, "w = %f x = %f y = %f z = %f", &w, &x, &y, &z)
	if n < 4 {
		if n > 0 {
			return Sample{}, fmt.Errorf("%w: quaternion line has %d of 4 fields", ErrIncomplete, n)
		}
		return Sample{}, fmt.Errorf("%w: quaternion line: %v", ErrMalformed, err)
	}
	for _, f := range []float64{w, x, y, z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Sample{}, fmt.Errorf("%w: non-finite quaternion component", ErrMalformed)
		}
	}
	return Sample{
		Orientation: orientation.Quaternion{W: w, X: x, Y: y, Z: z},
		Format:      FormatQuaternion,
	}, nil
}

// decodeAngles parses the legacy "Ang.x = <d>\t\tAng.y = <d>" tilt pair.
// Exactly two integer fields are required; anything less is a failure,
// matching the framing that a partial scanf match never yields a sample.
func decodeAngles(line string) (Sample, error) {
	var ax, ay int
	n, _ := fmt.Sscanf(line, "Ang.x = %d Ang.y = %d", &ax, &ay)
	if n < 2 {
		if n == 1 {
			return Sample{}, fmt.Errorf("%w: angle line has 1 of 2 fields", ErrIncomplete)
		}
		return Sample{}, fmt.Errorf("%w: angle line", ErrMalformed)
	}
	return Sample{
		Orientation: orientation.FromTiltAngles(float64(ax), float64(ay)),
		Format:      FormatAngles,
	}, nil
}

// decodeNMEA parses a $PASHR attitude sentence (heading, roll, pitch).
// Other sentence types are not orientation telemetry and are rejected
// as unknown rather than malformed.
func decodeNMEA(line string) (Sample, error) {
	sentence, err := nmea.Parse(line)
	if err != nil {
		var notSupported *nmea.NotSupportedError
		if errors.As(err, &notSupported) {
			return Sample{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return Sample{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	pashr, ok := sentence.(PASHR)
	if !ok {
		return Sample{}, fmt.Errorf("%w: NMEA sentence %s", ErrUnknownFormat, sentence.DataType())
	}
	return Sample{
		Orientation: orientation.FromEulerDegrees(pashr.Roll, pashr.Pitch, pashr.Heading),
		Format:      FormatNMEA,
	}, nil
}
