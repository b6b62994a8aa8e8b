package domain

import "errors"

// Domain errors represent error conditions in the acquisition and
// interpolation pipeline. They are matched with errors.Is; only transport
// open failures are allowed to surface out of the subsystem, everything
// else is recovered locally via retry or fallback.
var (
	// ErrFrameSync is returned when the frame marker is not found within an
	// acquisition attempt, including reads that time out while searching.
	ErrFrameSync = errors.New("thermalmap: frame marker not found")

	// ErrFrameParse is returned for a non-numeric payload token or a token
	// total other than GridValues.
	ErrFrameParse = errors.New("thermalmap: malformed frame payload")

	// ErrRetryExhausted indicates the per-frame attempt budget ran out and
	// the all-zero fallback frame was emitted instead.
	ErrRetryExhausted = errors.New("thermalmap: acquisition retries exhausted")

	// ErrInterpolation indicates the upsampling step could not fit the
	// samples and the zero surface was emitted instead.
	ErrInterpolation = errors.New("thermalmap: interpolation failed")

	// ErrReadTimeout is returned by transports when a line read exceeds the
	// configured per-read timeout.
	ErrReadTimeout = errors.New("thermalmap: read timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("thermalmap: invalid configuration")
)
