package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Bodhi8/kc-datacenter-impact/internal/benchmark"
	"github.com/Bodhi8/kc-datacenter-impact/internal/confidence"
	"github.com/Bodhi8/kc-datacenter-impact/internal/config"
	"github.com/Bodhi8/kc-datacenter-impact/internal/diagnostics"
	"github.com/Bodhi8/kc-datacenter-impact/internal/report"
	"github.com/Bodhi8/kc-datacenter-impact/internal/sensitivity"
	"github.com/Bodhi8/kc-datacenter-impact/internal/timeseries"
	"github.com/Bodhi8/kc-datacenter-impact/internal/validate"
)

func newBacktestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run the comprehensive model backtest",
		Long: `Run the full validation suite: time-series cross-validation, walk-forward
simulation, real-market benchmarks, sensitivity analysis, confidence
intervals, and residual diagnostics. Results print to stdout and are written
as JSON and markdown artifacts.`,
		RunE: runBacktest,
	}

	cmd.Flags().Int("splits", 0, "Override cross-validation fold count")
	cmd.Flags().Int("window", 0, "Override walk-forward window size (months)")
	cmd.Flags().Int64("seed", 0, "Override synthetic data seed")
	cmd.Flags().String("output", "", "Override artifact output directory")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("splits"); v > 0 {
		cfg.Validation.NSplits = v
	}
	if v, _ := cmd.Flags().GetInt("window"); v > 0 {
		cfg.Validation.WindowSize = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		cfg.Generator.Seed = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Dir = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	demand, price, err := timeseries.Generate(cfg.Generator)
	if err != nil {
		return fmt.Errorf("generating series: %w", err)
	}
	log.Info().Int("months", len(demand)).Int64("seed", cfg.Generator.Seed).Msg("Synthetic history generated")

	runner, err := validate.NewRunner(cfg.Validation)
	if err != nil {
		return err
	}

	cv, err := runner.RunCrossValidation(demand, price)
	if err != nil {
		return fmt.Errorf("cross-validation: %w", err)
	}

	wf, err := runner.RunWalkForward(cmd.Context(), demand, price)
	if err != nil {
		return fmt.Errorf("walk-forward: %w", err)
	}

	diag, err := diagnostics.Analyze(wf.Records, cfg.Diagnostics)
	if err != nil {
		return fmt.Errorf("residual diagnostics: %w", err)
	}

	estimator, err := confidence.NewEstimator(cfg.Confidence.Level, cfg.Confidence.Conversion)
	if err != nil {
		return err
	}
	est, err := estimator.Estimate(validate.Residuals(wf.Records), cfg.Confidence.PointForecast)
	if err != nil {
		return fmt.Errorf("confidence intervals: %w", err)
	}

	shock := benchmark.PJMCapacityShock()
	results := &report.RunResults{
		CrossValidation: cv,
		WalkForward:     wf,
		Diagnostics:     diag,
		Confidence:      est,
		Benchmarks:      benchmark.CompareAll(),
		CapacityShock:   &shock,
		Sensitivity:     sensitivity.Sweep(cfg.Sensitivity),
	}

	fmt.Print(report.Render(results))

	writer := report.NewWriter(cfg.Output.Dir)
	if err := writer.WriteResults(results); err != nil {
		return err
	}
	if err := writer.WriteReport(results); err != nil {
		return err
	}
	log.Info().Str("dir", writer.OutputDir()).Msg("Artifacts written")
	return nil
}
