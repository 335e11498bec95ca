package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelves/internal/sqlite"
)

// readInput reads the named file, or standard input when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// attachHistory resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func (a *app) attachHistory() (*sqlite.Backend, error) {
	cfg, err := a.historyConfig()
	if err != nil {
		return nil, sysError(err)
	}
	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach history: %w", err))
	}
	return backend, nil
}
