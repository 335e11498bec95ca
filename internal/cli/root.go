// Package cli implements the shelf command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/shelves/internal/paths"
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
	user      bool
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "shelf" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "shelf",
		Short: "Edit visualization shelves and compile them to spec queries",
		Long: "shelf drives the encoding-shelf model: it applies shelf actions and\n" +
			"drops, converts encoding lists, and records editing sessions.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			configDir, err := paths.ResolveConfigDir(a.flags.configDir, a.flags.user)
			if err != nil {
				return sysError(fmt.Errorf("resolve config dir: %w", err))
			}
			a.config, err = loadConfig(configDir)
			if err != nil {
				return userError(err)
			}
			a.logger, err = newLogger(a.flags.verbose, a.config.GetString(cfgKeyLogLevel))
			if err != nil {
				return userError(err)
			}
			a.logger.Debug("config loaded",
				zap.String("config_dir", configDir),
				zap.String("config_file", a.config.ConfigFileUsed()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.shelves)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "history data directory (default: $(CWD)/.shelves-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.flags.user, "user", false, "use the per-user platform directories by default")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newApplyCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newPaneCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root
}

// newLogger builds a production logger. verbose forces debug level;
// otherwise level, when set, is parsed as a zap level name.
func newLogger(verbose bool, level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	switch {
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case level != "":
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", cfgKeyLogLevel, level, err)
		}
		config.Level = lvl
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitUserError
	}
	return exitSuccess
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
