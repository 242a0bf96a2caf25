package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MinMaxScaler rescales a single feature into [0, 1] using bounds learned
// from training data only. Transforming values outside the fitted bounds
// extrapolates linearly; the bounds are never refit on test inputs, which
// would leak future information into the model.
type MinMaxScaler struct {
	min    float64
	max    float64
	fitted bool
}

// NewMinMaxScaler returns an unfitted scaler.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// Fit learns the min/max bounds from training values.
func (s *MinMaxScaler) Fit(values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("minmax scaler: cannot fit on empty input")
	}
	s.min = floats.Min(values)
	s.max = floats.Max(values)
	s.fitted = true
	return nil
}

// Transform maps values through the fitted bounds: fitted min -> 0, fitted
// max -> 1, values beyond the bounds extrapolate linearly. A degenerate fit
// (min == max) maps every input to 0.
func (s *MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("minmax scaler: transform called before fit")
	}
	out := make([]float64, len(values))
	span := s.max - s.min
	if span == 0 {
		return out, nil
	}
	for i, v := range values {
		out[i] = (v - s.min) / span
	}
	return out, nil
}

// FitTransform fits the scaler on values and returns their scaled form.
func (s *MinMaxScaler) FitTransform(values []float64) ([]float64, error) {
	if err := s.Fit(values); err != nil {
		return nil, err
	}
	return s.Transform(values)
}

// Bounds returns the fitted min and max. Valid only after Fit.
func (s *MinMaxScaler) Bounds() (min, max float64) {
	return s.min, s.max
}
