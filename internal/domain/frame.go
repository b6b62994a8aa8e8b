package domain

import (
	"fmt"
	"math"
	"time"
)

// Grid dimensions are fixed by the sensor and the display pipeline.
const (
	// GridSize is the edge length of the sensor grid (8x8 thermopile array).
	GridSize = 8

	// SurfaceSize is the edge length of the upsampled surface.
	SurfaceSize = 80

	// GridValues is the number of values in one complete sensor frame.
	GridValues = GridSize * GridSize
)

// RawFrame is one 8x8 temperature grid as received from the sensor,
// stored row-major.
type RawFrame struct {
	// Values holds the temperatures in row-major order.
	Values [GridSize][GridSize]float64

	// CapturedAt is the time the frame was assembled from the stream.
	CapturedAt time.Time

	// Degraded marks a fallback frame emitted after the retry budget was
	// exhausted, so downstream consumers can tell it apart from a genuine
	// all-zero reading.
	Degraded bool
}

// FrameFromValues assembles a RawFrame from exactly GridValues row-major
// samples. It returns a FrameParse error if the count is wrong or any value
// is not finite.
func FrameFromValues(values []float64, capturedAt time.Time) (RawFrame, error) {
	if len(values) != GridValues {
		return RawFrame{}, fmt.Errorf("%w: got %d values, want %d", ErrFrameParse, len(values), GridValues)
	}
	var f RawFrame
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return RawFrame{}, fmt.Errorf("%w: value %d is not finite", ErrFrameParse, i)
		}
		f.Values[i/GridSize][i%GridSize] = v
	}
	f.CapturedAt = capturedAt
	return f, nil
}

// FallbackFrame returns the all-zero frame emitted when acquisition gives up.
func FallbackFrame(capturedAt time.Time) RawFrame {
	return RawFrame{CapturedAt: capturedAt, Degraded: true}
}

// Surface is the 80x80 interpolated estimate derived from one RawFrame,
// stored row-major. Values may overshoot the raw frame's min and max; the
// zero Surface doubles as the interpolation fallback.
type Surface struct {
	Values [SurfaceSize][SurfaceSize]float64
}

// TickResult is the output of one pipeline tick. It is handed to the
// Presenter and never retained across ticks.
type TickResult struct {
	Raw          RawFrame
	Interpolated Surface

	// Degraded is set when either acquisition fell back to the zero frame
	// or interpolation fell back to the zero surface.
	Degraded bool
}

// Range is an inclusive display band for one presented channel.
type Range struct {
	Lo float64
	Hi float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Lo {
		return r.Lo
	}
	if v > r.Hi {
		return r.Hi
	}
	return v
}

// Valid reports whether the range is well-formed.
func (r Range) Valid() bool {
	return r.Lo < r.Hi
}
