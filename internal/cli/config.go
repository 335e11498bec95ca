package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelves/internal/paths"
	"github.com/mesh-intelligence/shelves/internal/reducer"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "SHELVES"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyLogLevel     = "log_level"
	cfgKeyHistoryLimit = "history_limit"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	HistoryLimit int    `yaml:"history_limit"`
}

// loadConfig reads config.yaml from configDir using Viper. Keys may be
// overridden by SHELVES_-prefixed environment variables. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyHistoryLimit, reducer.DefaultHistoryLimit)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:      types.BackendSQLite,
		DataDir:      dataDir,
		LogLevel:     "info",
		HistoryLimit: reducer.DefaultHistoryLimit,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// historyConfig returns the backend Config for this invocation.
func (a *app) historyConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir), a.flags.user)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{Backend: a.config.GetString(cfgKeyBackend), DataDir: dataDir}, nil
}
