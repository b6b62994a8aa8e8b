package ports

import "github.com/farmsight/thermalmap/internal/domain"

// FrameSource produces validated sensor frames.
//
// Implementations own their Transport and never let an acquisition error
// escape: after exhausting retries they return the all-zero fallback frame
// with its Degraded flag set rather than failing the caller.
type FrameSource interface {
	// NextFrame blocks until a frame is assembled or the retry budget is
	// exhausted. It is deterministic for a given byte stream.
	NextFrame() domain.RawFrame

	// Close releases the owned transport.
	Close() error
}
