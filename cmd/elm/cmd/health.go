package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/foundation/core/alloc"
	"github.com/msto63/elm/pkg/core/config"
	"github.com/msto63/elm/pkg/core/health"
	"github.com/msto63/elm/pkg/core/logging"
	"github.com/msto63/elm/pkg/core/version"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the configured loggers, archives and allocation limits",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	reg, err := logging.NewRegistry(cfg)
	if err != nil {
		printError("building loggers", err)
		return err
	}
	defer reg.Close()

	checks := health.NewRegistry(cfg.General.Name, version.Library)
	checks.Register(health.AllocCheck(alloc.Default(), cfg.Alloc.MaxLiveErrors))

	for _, name := range reg.Names() {
		l, _ := reg.Get(name)
		defer l.Release()
		checks.Register(health.LoggerCheck(l))
	}

	for _, lc := range cfg.Loggers {
		kind, path, err := lc.Target()
		if err != nil || kind != config.OutputArchive {
			continue
		}
		w, err := logging.NewArchiveWriter(logging.ArchiveWriterConfig{Path: path, Logger: lc.Name, FlushPeriod: time.Hour})
		if err != nil {
			return err
		}
		defer w.Close()
		checks.Register(health.ArchiveCheck(lc.Name, w))
	}

	report := checks.CheckWithTimeout(5 * time.Second)

	out := cmd.OutOrStdout()
	if healthJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, report)
		for _, c := range report.Checks {
			fmt.Fprintf(out, "  %-20s %-9s %s\n", c.Name, c.Status, c.Message)
		}
	}

	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("health check failed")
	}
	return nil
}
