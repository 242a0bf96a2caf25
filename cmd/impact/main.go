package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "impact"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Kansas City data center impact model validation",
		Version: version,
		Long: `Backtesting suite for the KC data center impact forecasting models.

Validates the demand->price model with time-series cross-validation and
rolling walk-forward simulation, quantifies forecast reliability through
residual diagnostics and confidence intervals, and reports real-market
benchmarks and sensitivity scenarios.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (defaults to built-in settings)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}

	rootCmd.AddCommand(newBacktestCmd())
	rootCmd.AddCommand(newBenchmarkCmd())
	rootCmd.AddCommand(newSensitivityCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
