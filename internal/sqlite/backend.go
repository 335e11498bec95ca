// Package sqlite implements the SQLite history backend. SQLite is the query
// engine; JSONL files in the data directory are the source of truth and are
// rewritten atomically after every change.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// Backend implements types.History using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
}

var _ types.History = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Attach creates DataDir if needed, builds a fresh SQLite database, and
// loads the JSONL files into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return err
	}

	// The database is derived state; rebuild it from JSONL every time.
	dbPath := filepath.Join(config.DataDir, databaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	for _, name := range jsonlFiles {
		if err := ensureJSONL(filepath.Join(config.DataDir, name)); err != nil {
			db.Close()
			return fmt.Errorf("create %s: %w", name, err)
		}
	}

	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.Debug("history attached", zap.String("data_dir", config.DataDir))
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrBackendDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false

	b.logger.Debug("history detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
