package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bodhi8/kc-datacenter-impact/internal/report"
	"github.com/Bodhi8/kc-datacenter-impact/internal/sensitivity"
)

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep the rate-impact formula across deployment scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Print(report.RenderSensitivity(sensitivity.Sweep(cfg.Sensitivity)))
			return nil
		},
	}
	return cmd
}
