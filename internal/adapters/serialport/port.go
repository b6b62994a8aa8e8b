// Package serialport implements ports.Transport on a physical serial port.
package serialport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tarm/serial"

	"github.com/farmsight/thermalmap/internal/domain"
)

// Config holds serial port parameters.
type Config struct {
	// Device is the port path (e.g. "/dev/ttyUSB0", "COM5").
	Device string

	// Baud is the bit rate.
	Baud int

	// ReadTimeout bounds each individual line read.
	ReadTimeout time.Duration
}

// Port is a line-oriented transport over a serial connection. It has
// exactly one reader for its lifetime.
type Port struct {
	device string
	port   *serial.Port
	reader *bufio.Reader
}

// Open establishes the serial connection. An open failure is fatal to
// startup and is never retried.
func Open(cfg Config) (*Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return &Port{
		device: cfg.Device,
		port:   p,
		reader: bufio.NewReader(p),
	}, nil
}

// ReadLine returns the next line, trimmed. tarm/serial reports an elapsed
// read timeout as io.EOF with no data; that (and a partial line cut off by
// the timeout) surfaces as domain.ErrReadTimeout.
func (p *Port) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s", domain.ErrReadTimeout, p.device)
		}
		return "", fmt.Errorf("read %s: %w", p.device, err)
	}
	return strings.TrimSpace(line), nil
}

// Flush discards unread input, both in the OS buffer and in the local
// bufio buffer.
func (p *Port) Flush() error {
	p.reader.Reset(p.port)
	if err := p.port.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", p.device, err)
	}
	return nil
}

// Close releases the port.
func (p *Port) Close() error {
	return p.port.Close()
}
