package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFrameFromValues(t *testing.T) {
	values := make([]float64, GridValues)
	for i := range values {
		values[i] = float64(i)
	}
	capturedAt := time.Unix(1700000000, 0)

	frame, err := FrameFromValues(values, capturedAt)
	if err != nil {
		t.Fatalf("FrameFromValues: %v", err)
	}
	if frame.Values[0][0] != 0 || frame.Values[7][7] != 63 {
		t.Fatal("row-major assembly broken")
	}
	if frame.Values[1][0] != 8 {
		t.Fatalf("Values[1][0] = %v, want 8", frame.Values[1][0])
	}
	if !frame.CapturedAt.Equal(capturedAt) {
		t.Fatal("capture timestamp not preserved")
	}
	if frame.Degraded {
		t.Fatal("assembled frame marked degraded")
	}
}

func TestFrameFromValuesRejectsBadInput(t *testing.T) {
	good := make([]float64, GridValues)

	tests := []struct {
		name   string
		values []float64
	}{
		{"too few", good[:GridValues-1]},
		{"too many", append(append([]float64{}, good...), 0)},
		{"nan", func() []float64 {
			v := append([]float64{}, good...)
			v[10] = math.NaN()
			return v
		}()},
		{"infinity", func() []float64 {
			v := append([]float64{}, good...)
			v[63] = math.Inf(1)
			return v
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FrameFromValues(tt.values, time.Now())
			if !errors.Is(err, ErrFrameParse) {
				t.Fatalf("err = %v, want ErrFrameParse", err)
			}
		})
	}
}

func TestFallbackFrame(t *testing.T) {
	capturedAt := time.Unix(1700000000, 0)
	frame := FallbackFrame(capturedAt)

	if !frame.Degraded {
		t.Fatal("fallback frame not marked degraded")
	}
	if frame.Values != (RawFrame{}).Values {
		t.Fatal("fallback frame not all-zero")
	}
	if !frame.CapturedAt.Equal(capturedAt) {
		t.Fatal("capture timestamp not preserved")
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Lo: 15, Hi: 25}

	tests := []struct {
		in, want float64
	}{
		{14.9, 15},
		{15, 15},
		{20, 20},
		{25, 25},
		{25.1, 25},
		{-3, 15},
	}
	for _, tt := range tests {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeValid(t *testing.T) {
	if !(Range{Lo: 5, Hi: 25}).Valid() {
		t.Fatal("5..25 reported invalid")
	}
	if (Range{Lo: 25, Hi: 5}).Valid() {
		t.Fatal("inverted range reported valid")
	}
	if (Range{}).Valid() {
		t.Fatal("empty range reported valid")
	}
}
