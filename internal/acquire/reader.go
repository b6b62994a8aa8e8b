// Package acquire implements the framing, parsing, and retry state machine
// that turns the sensor's textual line stream into validated raw frames.
package acquire

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farmsight/thermalmap/internal/domain"
	"github.com/farmsight/thermalmap/internal/ports"
)

// Defaults for the acquisition protocol.
const (
	// DefaultMarker is the substring that signals the start of a frame.
	DefaultMarker = "Thermal data:"

	// DefaultMaxAttempts bounds the retries within one NextFrame call.
	DefaultMaxAttempts = 10
)

// Config holds the protocol parameters for a Reader.
type Config struct {
	// Marker is matched as a substring against incoming lines.
	Marker string

	// MaxAttempts is the per-frame retry budget.
	MaxAttempts int
}

// SetDefaults fills zero-valued fields with protocol defaults.
func (c *Config) SetDefaults() {
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
}

// attemptState is the protocol position within one acquisition attempt.
type attemptState int

const (
	stateSearchingMarker attemptState = iota
	stateReadingRows
	stateValidating
)

// Reader owns a Transport and assembles raw frames from its line stream.
//
// NextFrame never fails past its own boundary: after exhausting the retry
// budget it returns the all-zero fallback frame with Degraded set. Given an
// identical byte stream the sequence of states and the resulting frame is
// deterministic.
type Reader struct {
	transport   ports.Transport
	marker      string
	maxAttempts int
	logger      ports.Logger
	now         func() time.Time
}

// NewReader creates a Reader over the given transport. The Reader takes
// ownership of the transport; no other component may read from it.
func NewReader(transport ports.Transport, cfg Config, logger ports.Logger) *Reader {
	cfg.SetDefaults()
	return &Reader{
		transport:   transport,
		marker:      cfg.Marker,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

// NextFrame blocks until a frame is assembled or the retry budget is
// exhausted, in which case it returns the fallback frame.
func (r *Reader) NextFrame() domain.RawFrame {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		frame, err := r.attempt()
		if err == nil {
			return frame
		}
		r.logger.Debug("acquisition attempt failed",
			ports.Int("attempt", attempt),
			ports.Int("max_attempts", r.maxAttempts),
			ports.Err(err),
		)
	}

	r.logger.Warn("emitting fallback frame",
		ports.Int("attempts", r.maxAttempts),
		ports.Err(domain.ErrRetryExhausted),
	)
	return domain.FallbackFrame(r.now())
}

// Close releases the owned transport.
func (r *Reader) Close() error {
	return r.transport.Close()
}

// attempt runs the protocol state machine once:
//
//	SEARCHING_MARKER -> READING_ROWS -> VALIDATING -> success | error
//
// The input buffer is flushed first so a retry cannot resynchronize in the
// middle of a corrupted frame. A marker seen while reading rows restarts
// row collection on the fresh frame, discarding the partial payload.
func (r *Reader) attempt() (domain.RawFrame, error) {
	if err := r.transport.Flush(); err != nil {
		return domain.RawFrame{}, fmt.Errorf("flush input: %w", err)
	}

	state := stateSearchingMarker
	values := make([]float64, 0, domain.GridValues)
	rows := 0

	for {
		switch state {
		case stateSearchingMarker:
			line, err := r.transport.ReadLine()
			if err != nil {
				return domain.RawFrame{}, fmt.Errorf("%w: %v", domain.ErrFrameSync, err)
			}
			if strings.Contains(line, r.marker) {
				state = stateReadingRows
			}

		case stateReadingRows:
			line, err := r.transport.ReadLine()
			if err != nil {
				return domain.RawFrame{}, fmt.Errorf("%w: stream ended after %d rows: %v", domain.ErrFrameSync, rows, err)
			}
			if strings.Contains(line, r.marker) {
				// A new frame started before the payload completed.
				r.logger.Debug("marker inside payload, resynchronizing",
					ports.Int("rows_discarded", rows),
				)
				values = values[:0]
				rows = 0
				continue
			}
			for _, token := range strings.Fields(line) {
				v, err := strconv.ParseFloat(token, 64)
				if err != nil {
					return domain.RawFrame{}, fmt.Errorf("%w: non-numeric token %q in row %d", domain.ErrFrameParse, token, rows)
				}
				values = append(values, v)
			}
			rows++
			if rows == domain.GridSize {
				state = stateValidating
			}

		case stateValidating:
			return domain.FrameFromValues(values, r.now())
		}
	}
}
