package transport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// ReplaySource feeds recorded telemetry lines from a file at a fixed
// rate, standing in for the serial device during development and
// testing. It satisfies the same io.ReadCloser contract the ingest loop
// expects: reads block until data is due, and EOF is reported once the
// recording is exhausted.
type ReplaySource struct {
	pr   *io.PipeReader
	pw   *io.PipeWriter
	file *os.File
}

// NewReplaySource opens the recording at path and starts pacing its
// lines at one line per interval. An interval of zero replays as fast
// as the consumer reads.
func NewReplaySource(path string, interval time.Duration) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file %s: %w", path, err)
	}

	pr, pw := io.Pipe()
	rs := &ReplaySource{pr: pr, pw: pw, file: f}
	go rs.pump(interval)
	return rs, nil
}

func (rs *ReplaySource) pump(interval time.Duration) {
	scan := bufio.NewScanner(rs.file)
	scan.Buffer(make([]byte, MaxFrameLen), MaxFrameLen*4)

	for scan.Scan() {
		if _, err := fmt.Fprintf(rs.pw, "%s\n", scan.Text()); err != nil {
			// reader side closed; stop replaying
			return
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}
	rs.pw.CloseWithError(scan.Err()) // nil error becomes io.EOF for the reader
}

func (rs *ReplaySource) Read(p []byte) (int, error) {
	return rs.pr.Read(p)
}

// Close stops the replay; a blocked Read returns io.ErrClosedPipe.
func (rs *ReplaySource) Close() error {
	rs.pr.CloseWithError(io.EOF)
	return rs.file.Close()
}
