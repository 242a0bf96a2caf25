package report

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bodhi8/kc-datacenter-impact/internal/benchmark"
	"github.com/Bodhi8/kc-datacenter-impact/internal/confidence"
	"github.com/Bodhi8/kc-datacenter-impact/internal/diagnostics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/metrics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/sensitivity"
	"github.com/Bodhi8/kc-datacenter-impact/internal/validate"
)

func sampleResults() *RunResults {
	shock := benchmark.PJMCapacityShock()
	return &RunResults{
		CrossValidation: &validate.CrossValidationResult{
			NSplits: 2,
			Folds: []validate.FoldResult{
				{Fold: 1, TrainSize: 14, TestSize: 14, RMSE: 5.1, MAE: 4.0, R2: 0.62, MAPE: 11.2},
				{Fold: 2, TrainSize: 28, TestSize: 14, RMSE: 4.8, MAE: 3.9, R2: math.NaN(), MAPE: 10.4, Degenerate: true},
			},
			Summary: validate.CrossValidationSummary{
				RMSE: validate.MetricSummary{Mean: 4.95, Std: 0.15},
				MAE:  validate.MetricSummary{Mean: 3.95, Std: 0.05},
				R2:   validate.MetricSummary{Mean: 0.62, Std: 0},
				MAPE: validate.MetricSummary{Mean: 10.8, Std: 0.4},
			},
			DegenerateFolds: 1,
		},
		WalkForward: &validate.WalkForwardResult{
			WindowSize: 24,
			Steps:      60,
			Metrics: metrics.Bundle{
				RMSE: 5.2, MAE: 4.1, R2: 0.58, MAPE: 11.0, DirectionalAccuracy: 71.2,
			},
		},
		Diagnostics: &diagnostics.Report{
			Summary: diagnostics.Summary{Count: 60, Mean: 0.4, Median: 0.2, Std: 5.1, Min: -12.3, Max: 14.8},
			Bias:    diagnostics.BiasCheck{MeanResidual: 0.4, Threshold: 2, Classification: diagnostics.BiasNone},
		},
		Confidence: &confidence.Estimate{
			Level:         0.95,
			StandardError: 5.1,
			ZScore:        1.96,
			Wholesale:     confidence.Interval{PointEstimate: 100.98, LowerBound: 90.98, UpperBound: 110.98, MarginOfError: 10},
		},
		Benchmarks:    benchmark.CompareAll(),
		CapacityShock: &shock,
		Sensitivity:   sensitivity.Sweep(sensitivity.DefaultAssumptions()),
	}
}

func TestRenderIncludesAllSections(t *testing.T) {
	out := Render(sampleResults())

	for _, section := range []string{
		"TIME-SERIES CROSS-VALIDATION",
		"WALK-FORWARD VALIDATION",
		"VALIDATION AGAINST REAL-WORLD MARKETS",
		"SENSITIVITY ANALYSIS",
		"CONFIDENCE INTERVALS",
		"RESIDUAL ANALYSIS",
	} {
		assert.Contains(t, out, section)
	}
}

func TestRenderSkipsMissingSections(t *testing.T) {
	out := Render(&RunResults{})
	assert.Empty(t, out)

	out = Render(&RunResults{WalkForward: sampleResults().WalkForward})
	assert.Contains(t, out, "WALK-FORWARD VALIDATION")
	assert.NotContains(t, out, "TIME-SERIES CROSS-VALIDATION")
}

func TestRenderDegenerateMetricsAsUndefined(t *testing.T) {
	out := RenderCrossValidation(sampleResults().CrossValidation)
	assert.Contains(t, out, "undefined")
	assert.Contains(t, out, "Degenerate folds (r2 undefined): 1")
}

func TestRenderBenchmarksIncludesShock(t *testing.T) {
	res := sampleResults()
	out := RenderBenchmarks(res.Benchmarks, res.CapacityShock)
	assert.Contains(t, out, "Northern Virginia")
	assert.Contains(t, out, "PJM Interconnection")
	assert.Contains(t, out, "+$17.00/month")
}

func TestWriterPersistsArtifacts(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	res := sampleResults()

	require.NoError(t, w.WriteResults(res))
	require.NoError(t, w.WriteReport(res))

	data, err := os.ReadFile(w.ResultsPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"cross_validation\"")

	md, err := os.ReadFile(w.ReportPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Model Backtest Report"))
	assert.Contains(t, string(md), "WALK-FORWARD VALIDATION")
}
