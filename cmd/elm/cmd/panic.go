package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/foundation/core/catch"
	mdwerror "github.com/msto63/elm/foundation/core/error"
)

const defaultPanicMessage = "Intentional panic from the command line"

var panicCmd = &cobra.Command{
	Use:   "panic [message]",
	Short: "Raise an error outside any protected region",
	Long: `Raises an error with no protected region established. The error is
logged through the PANIC! logger and the process exits with status 255.`,
	RunE: runPanic,
}

func init() {
	rootCmd.AddCommand(panicCmd)
}

func runPanic(cmd *cobra.Command, args []string) error {
	msg := defaultPanicMessage
	if len(args) > 0 {
		msg = strings.Join(args, " ")
	}
	catch.Raise(mdwerror.New(msg))
	return nil
}
