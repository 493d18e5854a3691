package transport

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// DefaultBaudRate matches the firmware's serial output rate.
const DefaultBaudRate = 38400

// OpenSerial opens the telemetry serial device in 8N1 mode with
// blocking reads (a read returns as soon as one byte is available).
// The caller owns the returned handle for the whole ingest session and
// closes it after the ingest loop has returned.
func OpenSerial(device string, baudRate uint) (io.ReadWriteCloser, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	opts := serial.OpenOptions{
		PortName:              device,
		BaudRate:              baudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", device, err)
	}
	return port, nil
}
