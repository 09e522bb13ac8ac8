package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/elm/pkg/core/config"
	"github.com/msto63/elm/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded before every command runs
	cfg     *config.Config
	restore func()
)

var rootCmd = &cobra.Command{
	Use:   "elm",
	Short: "elm - errors, logging and allocation",
	Long: `elm bundles owned error values, protected regions with raise and
catch, named loggers and an allocate-or-die shim.

Commands:
  selftest - run the built-in behavioural checks
  demo     - raise, catch and log an error
  panic    - raise outside any protected region (exits 255)
  metrics  - run the demo and print the collected metrics
  logs     - show lines stored in a log archive
  health   - check loggers, archives and allocation limits
  version  - show version information`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $ELM_CONFIG, ./configs/elm.toml, ./elm.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable the debug logger")
}

// setup loads the configuration and applies its process-wide settings
func setup(cmd *cobra.Command, args []string) error {
	// PersistentPostRunE is skipped when a command fails
	_ = teardown(cmd, args)

	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		printError("loading configuration", err)
		return err
	}

	if verbose {
		cfg.General.Debug = true
	}
	restore = logging.Setup(cfg)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if restore != nil {
		restore()
		restore = nil
	}
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
