// Package cli implements the yardstick command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/yardstick/internal/paths"
	"github.com/mesh-intelligence/yardstick/pkg/yardstick"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state one command invocation shares across subcommands.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	log       *slog.Logger
	stderr    io.Writer
}

// NewRootCmd creates the top-level "yardstick" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "yardstick",
		Short: "Exact-decimal length conversion and formatting",
		Long: `yardstick converts, combines, and renders lengths in metric and imperial
units without floating-point error, e.g. "89.25in" as "2yd 1ft 5-1/4in".

Negative measurements must follow "--" so they are not read as flags:
  yardstick convert -- -3ft in`,
		Version:       yardstick.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&a.flags.verbose, "verbose", false, "log debug detail to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newFormatCmd(a))
	root.AddCommand(newCalcCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newUnitsCmd(a))
	root.AddCommand(newLogCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:]))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Errors raised by cobra itself (unknown command, bad flag, wrong
	// argument count) are usage errors.
	return exitUserError
}

// setup installs the logger and loads configuration before any subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	a.stderr = cmd.ErrOrStderr()
	level := slog.LevelInfo
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.v = v
	a.log.Debug("config loaded", "config_dir", configDir, "file", v.ConfigFileUsed())
	return nil
}

// resolveDataDir returns the data directory path following the precedence
// --data-dir flag > config.yaml data_dir > YARDSTICK_DATA_DIR env > $(CWD)/.yardstick-db.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
}
