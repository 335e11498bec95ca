// Package sqlite provides the public API for the SQLite history backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelves/internal/sqlite"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

// NewBackend creates a new SQLite history backend. A nil logger discards
// log output. The backend is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	history := sqlite.NewBackend(nil)
//	err := history.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".shelves-db",
//	})
//	defer history.Detach()
func NewBackend(logger *zap.Logger) types.History {
	return sqlite.NewBackend(logger)
}
