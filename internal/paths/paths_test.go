package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/shelves", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "shelves"), got)
	})

	t.Run("home lookup failure propagates", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		orig := platformDir.homeDir
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
		t.Cleanup(func() { platformDir.homeDir = orig })

		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestDefaultDataDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/shelves", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "shelves"), got)
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	base := filepath.Join(home, "Library", "Application Support", "shelves")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, base, got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "history"), got)
}

func TestResolveConfigDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		flag   string
		envVal string
		user   bool
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "env wins over user default", envVal: "/env/config", user: true, want: "/env/config"},
		{name: "CWD default when both empty", want: filepath.Join(cwd, DefaultConfigDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag, tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("user default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		want, err := DefaultConfigDir()
		require.NoError(t, err)
		got, err := ResolveConfigDir("", true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name    string
		flag    string
		configV string
		envVal  string
		want    string
	}{
		{name: "flag wins over all", flag: "/flag/data", configV: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "env wins over config.yaml", configV: "/config/data", envVal: "/env/data", want: "/env/data"},
		{name: "config.yaml wins when flag and env empty", configV: "/config/data", want: "/config/data"},
		{name: "CWD default when all empty", want: filepath.Join(cwd, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configV, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("user default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		want, err := DefaultDataDir()
		require.NoError(t, err)
		got, err := ResolveDataDir("", "", true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestResolve_AbsolutePath(t *testing.T) {
	t.Run("relative config flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("relative/path", false)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative config env becomes absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("", false)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative data config value becomes absolute", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "relative/config", false)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}
