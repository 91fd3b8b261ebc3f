// Package link replaces the operator at the scrollback prompt with a
// device on a serial line that plays back instruction lines and
// acknowledges every batch once it has room for the next.
package link

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/tarm/serial"
)

const (
	// batchEnd terminates a batch of lines.
	batchEnd = 0x17
	ack      = 0x06
	nak      = 0x15
)

// ErrRejected is returned when the device refuses a batch.
var ErrRejected = errors.New("link: batch rejected")

// Open opens the serial device dev at 115200 baud. With an empty dev,
// Open tries the usual adapter names for the platform in order: COM3 on
// Windows, /dev/ttyUSB0 then /dev/ttyACM0 on Linux. The error of the
// first failed device is returned when none opens.
func Open(dev string) (io.ReadWriteCloser, error) {
	const baudRate = 115200

	devices := candidates(dev, runtime.GOOS)
	if len(devices) == 0 {
		return nil, errors.New("link: no device specified")
	}
	var firstErr error
	for _, dev := range devices {
		c := &serial.Config{Name: dev, Baud: baudRate}
		s, err := serial.OpenPort(c)
		if err == nil {
			return s, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", dev, err)
		}
	}
	return nil, fmt.Errorf("link: %w", firstErr)
}

// candidates lists the devices Open tries, in order.
func candidates(dev, goos string) []string {
	if dev != "" {
		return []string{dev}
	}
	switch goos {
	case "windows":
		return []string{"COM3"}
	case "linux":
		return []string{"/dev/ttyUSB0", "/dev/ttyACM0"}
	}
	return nil
}

// Link writes lines to a device and acknowledges batches with the
// device's reply.
type Link struct {
	dev  io.ReadWriter
	bufr *bufio.Reader
}

func New(dev io.ReadWriter) *Link {
	return &Link{
		dev:  dev,
		bufr: bufio.NewReaderSize(dev, 16),
	}
}

func (l *Link) Write(p []byte) (int, error) {
	return l.dev.Write(p)
}

// Ack ends the current batch and waits for the device to accept it.
func (l *Link) Ack() error {
	if _, err := l.dev.Write([]byte{batchEnd}); err != nil {
		return fmt.Errorf("link: %w", err)
	}
	for {
		reply, err := l.bufr.ReadByte()
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}
		switch reply {
		case ack:
			return nil
		case nak:
			return ErrRejected
		case '\r', '\n':
			// Line noise from devices echoing their prompt.
		default:
			return fmt.Errorf("link: unexpected reply %#x", reply)
		}
	}
}
