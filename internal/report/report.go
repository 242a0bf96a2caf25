// Package report renders completed validation runs for the console and
// writes JSON/markdown artifacts. It is a pure consumer of the structured
// results; nothing here feeds back into the engine.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Bodhi8/kc-datacenter-impact/internal/benchmark"
	"github.com/Bodhi8/kc-datacenter-impact/internal/confidence"
	"github.com/Bodhi8/kc-datacenter-impact/internal/diagnostics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/sensitivity"
	"github.com/Bodhi8/kc-datacenter-impact/internal/validate"
)

// RunResults bundles everything a full backtest run produces. Any section
// may be nil when the corresponding stage was skipped.
type RunResults struct {
	CrossValidation *validate.CrossValidationResult `json:"cross_validation,omitempty"`
	WalkForward     *validate.WalkForwardResult     `json:"walk_forward,omitempty"`
	Diagnostics     *diagnostics.Report             `json:"diagnostics,omitempty"`
	Confidence      *confidence.Estimate            `json:"confidence,omitempty"`
	Benchmarks      []benchmark.Comparison          `json:"benchmarks,omitempty"`
	CapacityShock   *benchmark.CapacityShock        `json:"capacity_shock,omitempty"`
	Sensitivity     []sensitivity.Scenario          `json:"sensitivity,omitempty"`
}

func fmtMetric(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", v)
}

// RenderCrossValidation formats the fold table and summary as console text.
func RenderCrossValidation(res *validate.CrossValidationResult) string {
	var b strings.Builder
	b.WriteString("TIME-SERIES CROSS-VALIDATION\n")
	b.WriteString(fmt.Sprintf("%-6s %-8s %-8s %-10s %-10s %-10s %-10s\n",
		"Fold", "Train", "Test", "RMSE", "MAE", "R2", "MAPE%"))
	for _, f := range res.Folds {
		b.WriteString(fmt.Sprintf("%-6d %-8d %-8d %-10.2f %-10.2f %-10s %-10s\n",
			f.Fold, f.TrainSize, f.TestSize, f.RMSE, f.MAE, fmtMetric(f.R2), fmtMetric(f.MAPE)))
	}
	s := res.Summary
	b.WriteString(fmt.Sprintf("\nAverage RMSE: $%.2f (±$%.2f)/MWh\n", s.RMSE.Mean, s.RMSE.Std))
	b.WriteString(fmt.Sprintf("Average MAE:  $%.2f (±$%.2f)/MWh\n", s.MAE.Mean, s.MAE.Std))
	b.WriteString(fmt.Sprintf("Average R2:   %s (±%s)\n", fmtMetric(s.R2.Mean), fmtMetric(s.R2.Std)))
	b.WriteString(fmt.Sprintf("Average MAPE: %s%% (±%s%%)\n", fmtMetric(s.MAPE.Mean), fmtMetric(s.MAPE.Std)))
	if res.DegenerateFolds > 0 {
		b.WriteString(fmt.Sprintf("Degenerate folds (r2 undefined): %d\n", res.DegenerateFolds))
	}
	return b.String()
}

// RenderWalkForward formats the walk-forward metrics as console text.
func RenderWalkForward(res *validate.WalkForwardResult) string {
	var b strings.Builder
	b.WriteString("WALK-FORWARD VALIDATION\n")
	b.WriteString(fmt.Sprintf("Training window: %d months, forecast steps: %d\n", res.WindowSize, res.Steps))
	b.WriteString(fmt.Sprintf("  RMSE: $%.2f/MWh\n", res.Metrics.RMSE))
	b.WriteString(fmt.Sprintf("  MAE:  $%.2f/MWh\n", res.Metrics.MAE))
	b.WriteString(fmt.Sprintf("  R2:   %s\n", fmtMetric(res.Metrics.R2)))
	b.WriteString(fmt.Sprintf("  MAPE: %s%%\n", fmtMetric(res.Metrics.MAPE)))
	b.WriteString(fmt.Sprintf("  Directional Accuracy: %.2f%%\n", res.Metrics.DirectionalAccuracy))
	return b.String()
}

// RenderDiagnostics formats the residual analysis as console text.
func RenderDiagnostics(rep *diagnostics.Report) string {
	var b strings.Builder
	b.WriteString("RESIDUAL ANALYSIS\n")
	b.WriteString(fmt.Sprintf("  Mean:   $%.2f/MWh\n", rep.Summary.Mean))
	b.WriteString(fmt.Sprintf("  Median: $%.2f/MWh\n", rep.Summary.Median))
	b.WriteString(fmt.Sprintf("  StdDev: $%.2f/MWh\n", rep.Summary.Std))
	b.WriteString(fmt.Sprintf("  Min:    $%.2f/MWh\n", rep.Summary.Min))
	b.WriteString(fmt.Sprintf("  Max:    $%.2f/MWh\n", rep.Summary.Max))
	b.WriteString(fmt.Sprintf("  Bias: %s\n", rep.Bias.Classification))
	if rep.Normality != nil {
		b.WriteString(fmt.Sprintf("  Normality: %s (p=%.4f)\n", rep.Normality.Classification, rep.Normality.PValue))
	}
	if rep.Autocorrelation != nil {
		b.WriteString(fmt.Sprintf("  Lag-1 autocorrelation: %.3f, %s\n",
			rep.Autocorrelation.Lag1, rep.Autocorrelation.Classification))
	}
	return b.String()
}

// RenderConfidence formats the confidence intervals as console text.
func RenderConfidence(est *confidence.Estimate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("CONFIDENCE INTERVALS (%.0f%% confidence)\n", est.Level*100))
	b.WriteString(fmt.Sprintf("  Residual std dev: $%.2f/MWh, margin of error: ±$%.2f/MWh\n",
		est.StandardError, est.Wholesale.MarginOfError))
	b.WriteString(fmt.Sprintf("  Wholesale:    $%.2f [$%.2f, $%.2f]/MWh\n",
		est.Wholesale.PointEstimate, est.Wholesale.LowerBound, est.Wholesale.UpperBound))
	b.WriteString(fmt.Sprintf("  Retail rate:  $%.3f [$%.3f, $%.3f]/kWh\n",
		est.Retail.PointEstimate, est.Retail.LowerBound, est.Retail.UpperBound))
	b.WriteString(fmt.Sprintf("  Monthly bill: $%.2f [$%.2f, $%.2f]\n",
		est.MonthlyBill.PointEstimate, est.MonthlyBill.LowerBound, est.MonthlyBill.UpperBound))
	return b.String()
}

// RenderBenchmarks formats the market comparison as console text.
func RenderBenchmarks(comparisons []benchmark.Comparison, shock *benchmark.CapacityShock) string {
	var b strings.Builder
	b.WriteString("VALIDATION AGAINST REAL-WORLD MARKETS\n")
	for _, c := range comparisons {
		b.WriteString(fmt.Sprintf("  %s (%s, %s)\n", c.Market.Name, c.Market.Utility, c.Market.Period))
		b.WriteString(fmt.Sprintf("    Actual %.1f%% vs predicted %.1f%%: %.1fpp error (%.1f%%), %s\n",
			c.Market.ActualIncreasePct, c.Market.PredictedIncreasePct, c.ErrorPoints, c.ErrorPct, c.Rating))
	}
	if shock != nil {
		b.WriteString(fmt.Sprintf("  %s (%s)\n", shock.Name, shock.Period))
		b.WriteString(fmt.Sprintf("    Capacity price +%.0f%% ($%.2f -> $%.2f/MW-day), %.0f%% attributed to data centers\n",
			shock.IncreasePct, shock.PriceBefore, shock.PriceAfter, shock.DCAttributionPct))
		b.WriteString(fmt.Sprintf("    Residential impact: +$%.2f/month\n", shock.ResidentialImpactMo))
	}
	return b.String()
}

// RenderSensitivity formats the scenario sweep as console text.
func RenderSensitivity(rows []sensitivity.Scenario) string {
	var b strings.Builder
	b.WriteString("SENSITIVITY ANALYSIS\n")
	b.WriteString(fmt.Sprintf("%-42s %14s %10s\n", "Scenario", "Rate Increase", "vs Base"))
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-42s %13.1f%% %+9.1fpp\n", row.Name, row.RateIncreasePct, row.DeltaFromBase))
	}
	return b.String()
}

// Render produces the full console report in run order.
func Render(res *RunResults) string {
	var sections []string
	if res.CrossValidation != nil {
		sections = append(sections, RenderCrossValidation(res.CrossValidation))
	}
	if res.WalkForward != nil {
		sections = append(sections, RenderWalkForward(res.WalkForward))
	}
	if len(res.Benchmarks) > 0 || res.CapacityShock != nil {
		sections = append(sections, RenderBenchmarks(res.Benchmarks, res.CapacityShock))
	}
	if len(res.Sensitivity) > 0 {
		sections = append(sections, RenderSensitivity(res.Sensitivity))
	}
	if res.Confidence != nil {
		sections = append(sections, RenderConfidence(res.Confidence))
	}
	if res.Diagnostics != nil {
		sections = append(sections, RenderDiagnostics(res.Diagnostics))
	}
	return strings.Join(sections, "\n")
}
