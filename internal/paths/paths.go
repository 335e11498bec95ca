// Package paths decides where shelf keeps config.yaml and the history
// journal. Both live next to the working directory unless a flag, an
// environment variable, or (for history) config.yaml says otherwise; --user
// swaps the working-directory defaults for per-user platform directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Directory names created under the working directory by default.
const (
	DefaultConfigDirName = ".shelves"
	DefaultDataDirName   = ".shelves-db"
)

// Environment variables that redirect the directories of one shell.
const (
	EnvConfigDir = "SHELVES_CONFIG_DIR"
	EnvDataDir   = "SHELVES_DATA_DIR"
)

const appName = "shelves"

// platformDir is swapped in tests to simulate a missing home directory.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user directory holding config.yaml,
// used with --user.
//
// Linux:   $XDG_CONFIG_HOME/shelves (fallback ~/.config/shelves)
// macOS:   ~/Library/Application Support/shelves
// Windows: %APPDATA%/shelves
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// DefaultDataDir returns the per-user directory holding the history
// journal (sessions.jsonl, actions.jsonl), used with --user.
//
// Linux:   $XDG_DATA_HOME/shelves (fallback ~/.local/share/shelves)
// macOS:   ~/Library/Application Support/shelves/history
// Windows: %APPDATA%/shelves/history
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appName), nil
	default:
		// config.yaml lives in the same platform directory; keep the
		// history files out of its way.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName, "history"), nil
	}
}

// ResolveConfigDir picks the directory of config.yaml: --config-dir, then
// SHELVES_CONFIG_DIR, then $(CWD)/.shelves (DefaultConfigDir with --user).
// config.yaml cannot name its own directory, so it takes no part here.
// Explicit paths are made absolute.
func ResolveConfigDir(flag string, user bool) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if user {
		return DefaultConfigDir()
	}
	return cwdJoin(DefaultConfigDirName)
}

// ResolveDataDir picks the directory of the history journal: --data-dir,
// then SHELVES_DATA_DIR, then data_dir from config.yaml (configValue), then
// $(CWD)/.shelves-db (DefaultDataDir with --user). The environment sits
// above config.yaml so one shell can journal elsewhere without editing a
// shared config. Explicit paths are made absolute.
func ResolveDataDir(flag, configValue string, user bool) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if user {
		return DefaultDataDir()
	}
	return cwdJoin(DefaultDataDirName)
}

func cwdJoin(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
