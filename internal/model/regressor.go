// Package model implements the per-split forecasting model: a min-max
// feature scaler composed with an RBF kernel ridge regressor. One
// ScaledRegressor is constructed, fit, used, and discarded per
// train/test split; instances are never shared across splits, which is what
// keeps training-data leakage out of the validation results.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ScaledRegressor composes feature scaling with kernel regression for the
// single-feature demand -> price model. The scaler's bounds come exclusively
// from the training window passed to Fit.
type ScaledRegressor struct {
	scaler *MinMaxScaler
	model  *RBFRegressor
	fitted bool
}

// NewScaledRegressor returns an unfitted scaled regressor.
func NewScaledRegressor(params Params) *ScaledRegressor {
	return &ScaledRegressor{
		scaler: NewMinMaxScaler(),
		model:  NewRBFRegressor(params),
	}
}

// Fit scales trainX with freshly learned bounds and fits the kernel
// regressor on the scaled feature.
func (s *ScaledRegressor) Fit(trainX, trainY []float64) error {
	if len(trainX) != len(trainY) {
		return fmt.Errorf("scaled regressor: %d features vs %d targets", len(trainX), len(trainY))
	}
	scaled, err := s.scaler.FitTransform(trainX)
	if err != nil {
		return fmt.Errorf("scaled regressor: %w", err)
	}
	if err := s.model.Fit(featureColumn(scaled), trainY); err != nil {
		return err
	}
	s.fitted = true
	return nil
}

// Predict transforms testX through the training-time bounds and evaluates
// the fitted model.
func (s *ScaledRegressor) Predict(testX []float64) ([]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaled regressor: predict called before fit")
	}
	scaled, err := s.scaler.Transform(testX)
	if err != nil {
		return nil, fmt.Errorf("scaled regressor: %w", err)
	}
	return s.model.Predict(featureColumn(scaled))
}

// SupportCount reports the fitted model's support-point count.
func (s *ScaledRegressor) SupportCount() int {
	return s.model.SupportCount()
}

// featureColumn reshapes a 1-D feature slice into the n×1 rows-are-samples
// matrix the regressor expects.
func featureColumn(values []float64) *mat.Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return mat.NewDense(len(values), 1, data)
}
