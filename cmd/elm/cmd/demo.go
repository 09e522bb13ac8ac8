package cmd

import (
	"errors"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/foundation/core/catch"
	elmlog "github.com/msto63/elm/foundation/core/log"
	"github.com/msto63/elm/pkg/core/logging"
)

var demoFile string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Raise, catch and log an error",
	Long: `Opens a settings file inside a protected region. When the file is
missing the raised system error is caught, logged through the debug logger
(visible with --verbose) and every configured logger, and destroyed.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoFile, "file", "elm-demo.toml", "settings file to open")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	reg, err := logging.NewRegistry(cfg)
	if err != nil {
		printError("building loggers", err)
		return err
	}
	defer reg.Close()

	caught := catch.Try(func() {
		openSettings(demoFile)
	})
	if caught == nil {
		elmlog.Std.Printf("opened %s", demoFile)
		return nil
	}
	defer caught.Destroy()

	elmlog.Dbg.LogError(caught)
	for _, name := range reg.Names() {
		if l, ok := reg.Get(name); ok {
			l.LogError(caught)
			l.Release()
		}
	}
	elmlog.Std.Printf("recovered from %s error", caught.Kind())
	return nil
}

// openSettings raises instead of returning an error
func openSettings(path string) {
	f, err := os.Open(path)
	if err != nil {
		var errno syscall.Errno
		if errors.As(err, &errno) {
			catch.RaiseIO(path, errno, "open settings")
		}
		catch.Must(err)
	}
	f.Close()
}
