package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/pkg/errors"
)

// MinMaxScaler rescales each feature column to [0,1] using the minimum and
// maximum observed when it was fit. Columns that are constant in the fit data
// map to 0.
type MinMaxScaler struct {
	min, max []float64
}

// Fit records the per-column minimum and maximum of x.
func (s *MinMaxScaler) Fit(x *mat.Dense) {
	rows, cols := x.Dims()
	s.min = make([]float64, cols)
	s.max = make([]float64, cols)

	col := make([]float64, rows)
	for c := 0; c < cols; c++ {
		mat.Col(col, c, x)
		s.min[c] = floats.Min(col)
		s.max[c] = floats.Max(col)
	}
}

// Transform returns a rescaled copy of x. The scaler must have been fit with
// the same column count.
func (s *MinMaxScaler) Transform(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols != len(s.min) {
		return nil, errors.Errorf("scaler was fit on %d columns, given %d", len(s.min), cols)
	}

	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, c int, v float64) float64 {
		span := s.max[c] - s.min[c]
		if span == 0 {
			return 0
		}
		return (v - s.min[c]) / span
	}, x)

	return out, nil
}

// FitTransform fits the scaler on x and returns the rescaled copy.
func (s *MinMaxScaler) FitTransform(x *mat.Dense) *mat.Dense {
	s.Fit(x)
	out, _ := s.Transform(x)
	return out
}

// RangeScaler is the single-column counterpart of MinMaxScaler, used for the
// target vector so that reported errors can be mapped back to the original
// measurement scale.
type RangeScaler struct {
	min, max float64
}

// FitTransform records the range of y and returns a copy scaled to [0,1]. A
// constant target maps to all zeros.
func (s *RangeScaler) FitTransform(y []float64) []float64 {
	s.min = floats.Min(y)
	s.max = floats.Max(y)

	out := make([]float64, len(y))
	span := s.max - s.min
	if span == 0 {
		return out
	}
	for i, v := range y {
		out[i] = (v - s.min) / span
	}
	return out
}

// Invert maps scaled values back to the original target units.
func (s *RangeScaler) Invert(scaled []float64) []float64 {
	out := make([]float64, len(scaled))
	for i, v := range scaled {
		out[i] = v*(s.max-s.min) + s.min
	}
	return out
}
