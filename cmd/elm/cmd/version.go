package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		for _, c := range []string{"error", "catch", "log", "alloc"} {
			fmt.Fprintf(out, "  %-6s %s\n", c+":", version.ComponentVersion(c))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
