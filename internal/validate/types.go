package validate

import (
	"encoding/json"

	"github.com/Bodhi8/kc-datacenter-impact/internal/metrics"
)

// PredictionRecord is one held-out prediction paired with its actual value.
// Records are appended in strict temporal order and never mutated afterwards.
type PredictionRecord struct {
	Index     int     `json:"index"`
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
}

// FoldResult is one row of the cross-validation table. R2 is NaN and
// Degenerate is true when the fold's test actuals had zero variance; MAPE is
// NaN when every test actual was zero.
type FoldResult struct {
	Fold       int     `json:"fold"`
	TrainSize  int     `json:"train_size"`
	TestSize   int     `json:"test_size"`
	RMSE       float64 `json:"rmse"`
	MAE        float64 `json:"mae"`
	R2         float64 `json:"r2"`
	MAPE       float64 `json:"mape"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// MarshalJSON encodes the NaN metrics of degenerate folds as null.
func (f FoldResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fold       int      `json:"fold"`
		TrainSize  int      `json:"train_size"`
		TestSize   int      `json:"test_size"`
		RMSE       *float64 `json:"rmse"`
		MAE        *float64 `json:"mae"`
		R2         *float64 `json:"r2"`
		MAPE       *float64 `json:"mape"`
		Degenerate bool     `json:"degenerate,omitempty"`
	}{
		Fold:       f.Fold,
		TrainSize:  f.TrainSize,
		TestSize:   f.TestSize,
		RMSE:       metrics.NullableFloat(f.RMSE),
		MAE:        metrics.NullableFloat(f.MAE),
		R2:         metrics.NullableFloat(f.R2),
		MAPE:       metrics.NullableFloat(f.MAPE),
		Degenerate: f.Degenerate,
	})
}

// MetricSummary is the mean and sample standard deviation of one metric
// across folds, computed over the folds where the metric was defined.
type MetricSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// MarshalJSON encodes an all-degenerate summary (NaN mean and std) as null.
func (m MetricSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean *float64 `json:"mean"`
		Std  *float64 `json:"std"`
	}{
		Mean: metrics.NullableFloat(m.Mean),
		Std:  metrics.NullableFloat(m.Std),
	})
}

// CrossValidationSummary aggregates per-metric fold statistics.
type CrossValidationSummary struct {
	RMSE MetricSummary `json:"rmse"`
	MAE  MetricSummary `json:"mae"`
	R2   MetricSummary `json:"r2"`
	MAPE MetricSummary `json:"mape"`
}

// CrossValidationResult is the structured output of RunCrossValidation.
type CrossValidationResult struct {
	NSplits         int                    `json:"n_splits"`
	Folds           []FoldResult           `json:"folds"`
	Summary         CrossValidationSummary `json:"summary"`
	DegenerateFolds int                    `json:"degenerate_folds"`
}

// WalkForwardResult is the structured output of RunWalkForward. Records are
// in temporal order; Metrics covers the whole sequence, including
// directional accuracy over its first differences.
type WalkForwardResult struct {
	WindowSize int                `json:"window_size"`
	Steps      int                `json:"steps"`
	Records    []PredictionRecord `json:"records"`
	Metrics    metrics.Bundle     `json:"metrics"`
	Degenerate bool               `json:"degenerate,omitempty"`
}

// Residuals returns actual - predicted for each record, in record order.
func Residuals(records []PredictionRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Actual - rec.Predicted
	}
	return out
}

// Actuals extracts the actual values from records, in record order.
func Actuals(records []PredictionRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Actual
	}
	return out
}

// Predictions extracts the predicted values from records, in record order.
func Predictions(records []PredictionRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Predicted
	}
	return out
}
