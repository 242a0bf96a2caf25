// Package validate drives the train/predict validation regimes over a
// demand/price series pair: expanding-window cross-validation and rolling
// one-step walk-forward. Each split fits a fresh scaled regressor on its
// training range only; fitted models never outlive their split.
package validate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/Bodhi8/kc-datacenter-impact/internal/metrics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/model"
	"github.com/Bodhi8/kc-datacenter-impact/internal/split"
)

// Config controls a validation run.
type Config struct {
	NSplits     int          `yaml:"n_splits" json:"n_splits"`
	WindowSize  int          `yaml:"window_size" json:"window_size"`
	Parallelism int          `yaml:"parallelism" json:"parallelism"` // walk-forward worker bound; 0 = NumCPU
	Model       model.Params `yaml:"model" json:"model"`
}

// DefaultConfig returns the validation settings used by the impact analysis:
// 5 forward-chaining folds and a 24-month rolling window.
func DefaultConfig() Config {
	return Config{
		NSplits:    5,
		WindowSize: 24,
		Model:      model.DefaultParams(),
	}
}

// Validate checks the run configuration.
func (c Config) Validate() error {
	if c.NSplits < 1 {
		return fmt.Errorf("validate config: n_splits must be >= 1, got %d", c.NSplits)
	}
	if c.WindowSize < 2 {
		return fmt.Errorf("validate config: window_size must be >= 2, got %d", c.WindowSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("validate config: parallelism must be >= 0, got %d", c.Parallelism)
	}
	return c.Model.Validate()
}

// Runner executes validation regimes with a fixed configuration.
type Runner struct {
	cfg Config
}

// NewRunner creates a runner, or fails on an invalid configuration.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

// MismatchedLengthError reports demand/price series of unequal length, which
// is fatal for the whole run.
type MismatchedLengthError struct {
	DemandLen int
	PriceLen  int
}

func (e *MismatchedLengthError) Error() string {
	return fmt.Sprintf("validate: mismatched series lengths: %d demand vs %d price observations", e.DemandLen, e.PriceLen)
}

func checkSeries(demand, price []float64) error {
	if len(demand) != len(price) {
		return &MismatchedLengthError{DemandLen: len(demand), PriceLen: len(price)}
	}
	return nil
}

// RunCrossValidation iterates the expanding-window folds, fitting a fresh
// scaled regressor per fold and scoring its test-block predictions. A
// degenerate fold (constant test actuals, or all-zero actuals for MAPE) is
// recorded with NaN for the affected metric and never aborts the run. Series
// length mismatches and insufficient data are fatal.
func (r *Runner) RunCrossValidation(demand, price []float64) (*CrossValidationResult, error) {
	if err := checkSeries(demand, price); err != nil {
		return nil, err
	}
	splits, err := split.ExpandingCV(len(demand), r.cfg.NSplits)
	if err != nil {
		return nil, err
	}

	result := &CrossValidationResult{
		NSplits: r.cfg.NSplits,
		Folds:   make([]FoldResult, 0, len(splits)),
	}

	for _, sp := range splits {
		fold, err := r.runFold(demand, price, sp)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", sp.Fold, err)
		}
		if fold.Degenerate {
			result.DegenerateFolds++
			log.Warn().Int("fold", sp.Fold).Msg("degenerate fold: test actuals carry no variance, r2 undefined")
		}
		result.Folds = append(result.Folds, fold)
	}

	result.Summary = summarize(result.Folds)
	log.Info().
		Int("folds", len(result.Folds)).
		Float64("mean_rmse", result.Summary.RMSE.Mean).
		Float64("mean_r2", result.Summary.R2.Mean).
		Msg("cross-validation complete")
	return result, nil
}

func (r *Runner) runFold(demand, price []float64, sp split.Split) (FoldResult, error) {
	trainX := demand[sp.Train.Start:sp.Train.End]
	trainY := price[sp.Train.Start:sp.Train.End]
	testX := demand[sp.Test.Start:sp.Test.End]
	testY := price[sp.Test.Start:sp.Test.End]

	reg := model.NewScaledRegressor(r.cfg.Model)
	if err := reg.Fit(trainX, trainY); err != nil {
		return FoldResult{}, err
	}
	pred, err := reg.Predict(testX)
	if err != nil {
		return FoldResult{}, err
	}

	fold := FoldResult{
		Fold:      sp.Fold,
		TrainSize: sp.Train.Len(),
		TestSize:  sp.Test.Len(),
	}
	if fold.RMSE, err = metrics.RMSE(testY, pred); err != nil {
		return FoldResult{}, err
	}
	if fold.MAE, err = metrics.MAE(testY, pred); err != nil {
		return FoldResult{}, err
	}

	fold.R2, err = metrics.R2(testY, pred)
	if errors.Is(err, metrics.ErrZeroVariance) {
		fold.R2 = math.NaN()
		fold.Degenerate = true
	} else if err != nil {
		return FoldResult{}, err
	}

	fold.MAPE, err = metrics.MAPE(testY, pred)
	if errors.Is(err, metrics.ErrZeroActual) {
		fold.MAPE = math.NaN()
	} else if err != nil {
		return FoldResult{}, err
	}
	return fold, nil
}

// RunWalkForward simulates real-world forecasting: for each step it fits a
// fresh scaled regressor on the trailing window and predicts the single next
// value. Steps are fitted with bounded parallelism but records are assembled
// by step index, so the returned sequence is always in temporal order.
func (r *Runner) RunWalkForward(ctx context.Context, demand, price []float64) (*WalkForwardResult, error) {
	if err := checkSeries(demand, price); err != nil {
		return nil, err
	}
	splits, err := split.RollingWalkForward(len(demand), r.cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	workers := r.cfg.Parallelism
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	records := make([]PredictionRecord, len(splits))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sp := range splits {
		i, sp := i, sp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reg := model.NewScaledRegressor(r.cfg.Model)
			if err := reg.Fit(demand[sp.Train.Start:sp.Train.End], price[sp.Train.Start:sp.Train.End]); err != nil {
				return fmt.Errorf("step %d: %w", sp.Fold, err)
			}
			pred, err := reg.Predict(demand[sp.Test.Start:sp.Test.End])
			if err != nil {
				return fmt.Errorf("step %d: %w", sp.Fold, err)
			}
			records[i] = PredictionRecord{
				Index:     sp.Test.Start,
				Predicted: pred[0],
				Actual:    price[sp.Test.Start],
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &WalkForwardResult{
		WindowSize: r.cfg.WindowSize,
		Steps:      len(records),
		Records:    records,
	}

	actuals := Actuals(records)
	preds := Predictions(records)
	if result.Metrics.RMSE, err = metrics.RMSE(actuals, preds); err != nil {
		return nil, err
	}
	if result.Metrics.MAE, err = metrics.MAE(actuals, preds); err != nil {
		return nil, err
	}
	result.Metrics.R2, err = metrics.R2(actuals, preds)
	if errors.Is(err, metrics.ErrZeroVariance) {
		result.Metrics.R2 = math.NaN()
		result.Degenerate = true
		log.Warn().Msg("walk-forward actuals carry no variance, r2 undefined")
	} else if err != nil {
		return nil, err
	}
	result.Metrics.MAPE, err = metrics.MAPE(actuals, preds)
	if errors.Is(err, metrics.ErrZeroActual) {
		result.Metrics.MAPE = math.NaN()
	} else if err != nil {
		return nil, err
	}
	if result.Metrics.DirectionalAccuracy, err = metrics.DirectionalAccuracy(actuals, preds); err != nil {
		return nil, err
	}

	log.Info().
		Int("steps", result.Steps).
		Int("window", r.cfg.WindowSize).
		Float64("rmse", result.Metrics.RMSE).
		Float64("directional_accuracy", result.Metrics.DirectionalAccuracy).
		Msg("walk-forward validation complete")
	return result, nil
}

// summarize computes per-metric mean and sample standard deviation across
// folds, skipping NaN entries from degenerate folds.
func summarize(folds []FoldResult) CrossValidationSummary {
	pick := func(get func(FoldResult) float64) MetricSummary {
		vals := make([]float64, 0, len(folds))
		for _, f := range folds {
			if v := get(f); !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return MetricSummary{Mean: math.NaN(), Std: math.NaN()}
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) == 1 {
			std = 0
		}
		return MetricSummary{Mean: mean, Std: std}
	}
	return CrossValidationSummary{
		RMSE: pick(func(f FoldResult) float64 { return f.RMSE }),
		MAE:  pick(func(f FoldResult) float64 { return f.MAE }),
		R2:   pick(func(f FoldResult) float64 { return f.R2 }),
		MAPE: pick(func(f FoldResult) float64 { return f.MAPE }),
	}
}
