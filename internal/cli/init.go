package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelves/internal/paths"
	"github.com/mesh-intelligence/shelves/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf configuration and history storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, then initialize the history backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir, a.flags.user)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := a.historyConfig()
	if err != nil {
		return sysError(err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	// Only an explicit --data-dir is written; otherwise the CWD default
	// keeps following the working directory.
	if err := writeConfigIfMissing(configPath(configDir), a.flags.dataDir); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	history := sqlite.NewBackend(a.logger)
	if err := history.Attach(cfg); err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}
	if err := history.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	a.logger.Info("initialized",
		zap.String("config_dir", configDir),
		zap.String("data_dir", cfg.DataDir))
	fmt.Fprintln(cmd.OutOrStdout(), "Shelves initialized successfully")
	return nil
}

func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
