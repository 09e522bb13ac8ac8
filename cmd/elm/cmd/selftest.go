package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in behavioural checks",
	Long: `Runs the checks for errors, system errors, raise and catch,
logging, log hiding and allocation against the live library.

Prints one passed: or FAILED: line per check and exits 1 if any failed.`,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func runSelftest(cmd *cobra.Command, args []string) error {
	if failures := selftest.RunAll(cmd.OutOrStdout()); failures > 0 {
		return fmt.Errorf("%d checks failed", failures)
	}
	return nil
}
