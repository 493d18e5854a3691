// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package telemetry

import (
	nmea "github.com/adrianmo/go-nmea"
)

// typePASHR is the registration key for $PASHR sentences. go-nmea splits
// a proprietary prefix into talker "P" plus the remainder, so the
// sentence type it dispatches on is "ASHR".
const typePASHR = "ASHR"

// PASHR is the Ashtech proprietary attitude sentence. go-nmea has no
// built-in parser for it, so we register our own.
//
// Format: $PASHR,hhmmss.sss,HHH.HH,T,RRR.RR,PPP.PP,heave,rr,pp,hh,QF,IMU*CS
// Example: $PASHR,085335.000,90.000,T,10.000,5.000,0.000,0.101,0.113,0.267,1,0*14
type PASHR struct {
	nmea.BaseSentence
	Time            nmea.Time // UTC time of position fix
	Heading         float64   // true heading in degrees
	TrueHeading     string    // "T" indicates heading relative to true north
	Roll            float64   // degrees, positive for port up
	Pitch           float64   // degrees, positive for bow up
	Heave           float64   // meters
	RollAccuracy    float64   // degrees
	PitchAccuracy   float64   // degrees
	HeadingAccuracy float64   // degrees
	GPSQuality      int64     // 0 no fix, 1 GPS, 2 differential
	IMUStatus       int64     // 0 ok, 1 sensor failure
}

func newPASHR(s nmea.BaseSentence) (nmea.Sentence, error) {
	p := nmea.NewParser(s)
	m := PASHR{
		BaseSentence:    s,
		Time:            p.Time(0, "time"),
		Heading:         p.Float64(1, "heading"),
		TrueHeading:     p.EnumString(2, "true heading", "T"),
		Roll:            p.Float64(3, "roll"),
		Pitch:           p.Float64(4, "pitch"),
		Heave:           p.Float64(5, "heave"),
		RollAccuracy:    p.Float64(6, "roll accuracy"),
		PitchAccuracy:   p.Float64(7, "pitch accuracy"),
		HeadingAccuracy: p.Float64(8, "heading accuracy"),
		GPSQuality:      p.Int64(9, "GPS quality"),
		IMUStatus:       p.Int64(10, "IMU status"),
	}
	return m, p.Err()
}

func init() {
	nmea.MustRegisterParser(typePASHR, newPASHR)
}
