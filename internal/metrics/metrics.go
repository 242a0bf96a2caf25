// Package metrics provides pure forecast-accuracy functions over paired
// actual/predicted sequences. All functions are side-effect free and validate
// their inputs; guard conditions surface as typed errors rather than silent
// NaN propagation.
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for guarded metric edge cases.
var (
	// ErrZeroVariance indicates the actual series is constant, leaving R²
	// undefined (SS_tot == 0).
	ErrZeroVariance = errors.New("metrics: zero variance in actuals, r2 undefined")

	// ErrZeroActual indicates every actual value is zero, leaving MAPE with
	// no usable points after the zero-exclusion policy.
	ErrZeroActual = errors.New("metrics: all actual values are zero, mape undefined")

	// ErrTooFewPoints indicates a metric needs more observations than were
	// supplied.
	ErrTooFewPoints = errors.New("metrics: too few points")
)

// MismatchedLengthError reports paired sequences of unequal length.
type MismatchedLengthError struct {
	ActualLen    int
	PredictedLen int
}

func (e *MismatchedLengthError) Error() string {
	return fmt.Sprintf("metrics: mismatched lengths: %d actuals vs %d predictions", e.ActualLen, e.PredictedLen)
}

func checkPair(yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return &MismatchedLengthError{ActualLen: len(yTrue), PredictedLen: len(yPred)}
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("empty series: %w", ErrTooFewPoints)
	}
	return nil
}

// RMSE returns the root mean squared error between actuals and predictions.
func RMSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(yTrue))), nil
}

// MAE returns the mean absolute error between actuals and predictions.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

// R2 returns the coefficient of determination 1 - SS_res/SS_tot. A constant
// actual series has SS_tot == 0 and yields ErrZeroVariance; callers decide
// whether to record the fold as degenerate or abort.
func R2(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	mean := stat.Mean(yTrue, nil)
	ssRes, ssTot := 0.0, 0.0
	for i := range yTrue {
		r := yTrue[i] - yPred[i]
		ssRes += r * r
		d := yTrue[i] - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return math.NaN(), ErrZeroVariance
	}
	return 1 - ssRes/ssTot, nil
}

// zeroActual is the threshold below which an actual value is treated as zero
// for the MAPE exclusion policy.
const zeroActual = 1e-12

// MAPE returns the mean absolute percentage error. Points whose actual value
// is zero are excluded from the mean rather than poisoning the whole fold;
// if every point is excluded the result is ErrZeroActual.
func MAPE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	sum := 0.0
	used := 0
	for i := range yTrue {
		if math.Abs(yTrue[i]) < zeroActual {
			continue
		}
		sum += math.Abs((yTrue[i] - yPred[i]) / yTrue[i])
		used++
	}
	if used == 0 {
		return math.NaN(), ErrZeroActual
	}
	return sum / float64(used) * 100, nil
}

// DirectionalAccuracy returns the percentage of steps whose first difference
// has the same sign in actuals and predictions. A zero difference counts as
// non-positive on both sides so ties resolve deterministically. At least two
// points are required.
func DirectionalAccuracy(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	if len(yTrue) < 2 {
		return 0, fmt.Errorf("directional accuracy needs >= 2 points, have %d: %w", len(yTrue), ErrTooFewPoints)
	}
	hits := 0
	steps := len(yTrue) - 1
	for i := 1; i < len(yTrue); i++ {
		up := yTrue[i]-yTrue[i-1] > 0
		predUp := yPred[i]-yPred[i-1] > 0
		if up == predUp {
			hits++
		}
	}
	return float64(hits) / float64(steps) * 100, nil
}

// Bundle holds the point-forecast metrics for one fold or one full run.
// DirectionalAccuracy is NaN when it was not computed (cross-validation
// folds report it only over the single walk-forward sequence).
type Bundle struct {
	RMSE                float64 `json:"rmse"`
	MAE                 float64 `json:"mae"`
	R2                  float64 `json:"r2"`
	MAPE                float64 `json:"mape"`
	DirectionalAccuracy float64 `json:"directional_accuracy"`
}

// NullableFloat returns nil for NaN so encoding/json emits null instead of
// rejecting the value.
func NullableFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON encodes undefined metrics as null.
func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RMSE                *float64 `json:"rmse"`
		MAE                 *float64 `json:"mae"`
		R2                  *float64 `json:"r2"`
		MAPE                *float64 `json:"mape"`
		DirectionalAccuracy *float64 `json:"directional_accuracy"`
	}{
		RMSE:                NullableFloat(b.RMSE),
		MAE:                 NullableFloat(b.MAE),
		R2:                  NullableFloat(b.R2),
		MAPE:                NullableFloat(b.MAPE),
		DirectionalAccuracy: NullableFloat(b.DirectionalAccuracy),
	})
}
