package cmd

import (
	"fmt"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/msto63/elm/foundation/core/metrics"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Run the demo and print the collected metrics",
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&demoFile, "file", "elm-demo.toml", "settings file the demo opens")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	if err := runDemo(cmd, args); err != nil {
		return err
	}

	families, err := metrics.Default().Registry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
