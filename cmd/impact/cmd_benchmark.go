package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bodhi8/kc-datacenter-impact/internal/benchmark"
	"github.com/Bodhi8/kc-datacenter-impact/internal/report"
)

func newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Compare model projections against real-world market outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			shock := benchmark.PJMCapacityShock()
			fmt.Print(report.RenderBenchmarks(benchmark.CompareAll(), &shock))
			return nil
		},
	}
}
