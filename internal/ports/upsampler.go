package ports

import "github.com/farmsight/thermalmap/internal/domain"

// Upsampler estimates a high-resolution surface from one raw frame.
//
// Upsample is pure: no side effects, no state across calls. On failure it
// returns the zero Surface together with an error wrapping
// domain.ErrInterpolation; the failure is non-fatal to the pipeline.
type Upsampler interface {
	Upsample(frame domain.RawFrame) (domain.Surface, error)
}
