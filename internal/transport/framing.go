// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package transport

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxFrameLen is the upper bound on one telemetry frame. A physical
// line longer than this is truncated at the cap before decoding and the
// remainder of the line is discarded.
const MaxFrameLen = 1024

// LineReader frames newline-terminated telemetry lines from a raw byte
// stream. It never buffers more than MaxFrameLen bytes per frame.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r for frame-by-frame reading.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, MaxFrameLen)}
}

// ReadFrame blocks until one full line (or the frame cap) is available
// and returns it without the line terminator. Trailing data before EOF
// that lacks a terminator is returned as a final frame; the next call
// reports io.EOF.
func (lr *LineReader) ReadFrame() (string, error) {
	frame, err := lr.r.ReadSlice('\n')

	switch {
	case err == nil:
		// complete line within the cap

	case errors.Is(err, bufio.ErrBufferFull):
		// oversize line: keep the first MaxFrameLen bytes, drop the rest
		truncated := string(frame)
		if derr := lr.discardToNewline(); derr != nil && !errors.Is(derr, io.EOF) {
			return "", derr
		}
		return strings.TrimRight(truncated, "\r"), nil

	case errors.Is(err, io.EOF):
		if len(frame) == 0 {
			return "", io.EOF
		}
		// unterminated final frame

	default:
		return "", err
	}

	return strings.TrimRight(string(frame), "\r\n"), nil
}

// discardToNewline consumes the tail of an oversize line.
func (lr *LineReader) discardToNewline() error {
	for {
		_, err := lr.r.ReadSlice('\n')
		if err == nil {
			return nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}
