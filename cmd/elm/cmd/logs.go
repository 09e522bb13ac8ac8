package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/pkg/core/config"
	"github.com/msto63/elm/pkg/core/logging"
)

var (
	logsLimit   int
	logsLogger  string
	logsSession string
)

var logsCmd = &cobra.Command{
	Use:   "logs [archive]",
	Short: "Show lines stored in a log archive",
	Long: `Reads lines from a SQLite log archive. Without an argument the first
logger configured with an archive: output is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "number of most recent lines to show (0 = all)")
	logsCmd.Flags().StringVar(&logsLogger, "logger", "", "only lines from this logger")
	logsCmd.Flags().StringVar(&logsSession, "session", "", "only lines from this session")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		path = archivePath(cfg)
	}
	if path == "" {
		return fmt.Errorf("no archive given and none configured")
	}

	w, err := logging.NewArchiveWriter(logging.ArchiveWriterConfig{Path: path, FlushPeriod: time.Hour})
	if err != nil {
		printError("opening archive", err)
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lines, err := w.Query(ctx, logging.ArchiveFilter{
		Logger:  logsLogger,
		Session: logsSession,
		Limit:   logsLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintf(out, "%s  %s\n", l.CreatedAt.Format(time.RFC3339), l.Line)
	}
	return nil
}

// archivePath returns the path of the first archive logger in c
func archivePath(c *config.Config) string {
	if c == nil {
		return ""
	}
	for _, l := range c.Loggers {
		if kind, path, err := l.Target(); err == nil && kind == config.OutputArchive {
			return path
		}
	}
	return ""
}
