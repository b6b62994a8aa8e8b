// Package interp upsamples the 8x8 sensor grid to the 80x80 display surface
// using cubic spline interpolation.
package interp

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/farmsight/thermalmap/internal/domain"
)

// BicubicUpsampler estimates an 80x80 surface from an 8x8 frame.
//
// The grid samples sit at integer coordinates 0..7 on each axis and the
// targets are 80 evenly spaced coordinates spanning the same [0,7] range.
// Interpolation is separable: a natural cubic spline pass along each row,
// then along each resulting column. Splines reproduce constant and linear
// fields exactly and may overshoot elsewhere, matching cubic behavior.
//
// Upsample is pure and safe for repeated use; the zero value is ready to use.
type BicubicUpsampler struct{}

// NewBicubicUpsampler creates the upsampler.
func NewBicubicUpsampler() *BicubicUpsampler {
	return &BicubicUpsampler{}
}

// Upsample returns the interpolated surface for the given frame. On fit
// failure it returns the zero surface and an error wrapping
// domain.ErrInterpolation; the caller treats the failure as non-fatal.
func (u *BicubicUpsampler) Upsample(frame domain.RawFrame) (domain.Surface, error) {
	xs := sampleCoords()
	targets := targetCoords()

	var cubic interp.NaturalCubic

	// Row pass: 8x8 -> 8x80.
	var rows [domain.GridSize][domain.SurfaceSize]float64
	for r := 0; r < domain.GridSize; r++ {
		if err := cubic.Fit(xs[:], frame.Values[r][:]); err != nil {
			return domain.Surface{}, fmt.Errorf("%w: row %d: %v", domain.ErrInterpolation, r, err)
		}
		for i, x := range targets {
			rows[r][i] = cubic.Predict(x)
		}
	}

	// Column pass: 8x80 -> 80x80.
	var out domain.Surface
	col := make([]float64, domain.GridSize)
	for c := 0; c < domain.SurfaceSize; c++ {
		for r := 0; r < domain.GridSize; r++ {
			col[r] = rows[r][c]
		}
		if err := cubic.Fit(xs[:], col); err != nil {
			return domain.Surface{}, fmt.Errorf("%w: column %d: %v", domain.ErrInterpolation, c, err)
		}
		for i, y := range targets {
			out.Values[i][c] = cubic.Predict(y)
		}
	}

	return out, nil
}

// sampleCoords returns the source coordinates 0..7.
func sampleCoords() [domain.GridSize]float64 {
	var xs [domain.GridSize]float64
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// targetCoords returns 80 evenly spaced coordinates spanning [0, 7].
func targetCoords() [domain.SurfaceSize]float64 {
	var ts [domain.SurfaceSize]float64
	span := float64(domain.GridSize - 1)
	for i := range ts {
		ts[i] = span * float64(i) / float64(domain.SurfaceSize-1)
	}
	return ts
}
