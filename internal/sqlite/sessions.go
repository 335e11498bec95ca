package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// CreateSession starts a recorded session from initial.
func (b *Backend) CreateSession(name string, initial types.Shelf) (types.Session, error) {
	if strings.TrimSpace(name) == "" {
		return types.Session{}, types.ErrInvalidName
	}
	if err := initial.Validate(); err != nil {
		return types.Session{}, err
	}
	shelf, err := json.Marshal(initial.Clone())
	if err != nil {
		return types.Session{}, fmt.Errorf("encoding initial shelf: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.Session{}, types.ErrBackendDetached
	}

	r := sessionRecord{
		SessionID: generateUUID(),
		Name:      name,
		Initial:   shelf,
		CreatedAt: formatTime(time.Now()),
	}
	if _, err := b.db.Exec(
		`INSERT INTO sessions (session_id, name, initial, created_at) VALUES (?, ?, ?, ?)`,
		r.SessionID, r.Name, string(r.Initial), r.CreatedAt,
	); err != nil {
		return types.Session{}, fmt.Errorf("insert session: %w", err)
	}
	if err := b.persistSessionsLocked(); err != nil {
		return types.Session{}, err
	}

	b.logger.Debug("session created", zap.String("session_id", r.SessionID), zap.String("name", name))
	return r.toSession()
}

// GetSession returns the session with the given ID.
func (b *Backend) GetSession(sessionID string) (types.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.Session{}, types.ErrBackendDetached
	}

	var r sessionRecord
	var initial string
	err := b.db.QueryRow(
		`SELECT session_id, name, initial, created_at FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&r.SessionID, &r.Name, &initial, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Session{}, types.ErrNotFound
	}
	if err != nil {
		return types.Session{}, fmt.Errorf("query session: %w", err)
	}
	r.Initial = json.RawMessage(initial)
	return r.toSession()
}

// ListSessions returns all sessions, oldest first.
func (b *Backend) ListSessions() ([]types.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	records, err := b.sessionRecordsLocked()
	if err != nil {
		return nil, err
	}
	sessions := make([]types.Session, 0, len(records))
	for _, r := range records {
		s, err := r.toSession()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (b *Backend) sessionRecordsLocked() ([]sessionRecord, error) {
	rows, err := b.db.Query(
		`SELECT session_id, name, initial, created_at FROM sessions ORDER BY created_at, session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []sessionRecord
	for rows.Next() {
		var r sessionRecord
		var initial string
		if err := rows.Scan(&r.SessionID, &r.Name, &initial, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		r.Initial = json.RawMessage(initial)
		records = append(records, r)
	}
	return records, rows.Err()
}

// persistSessionsLocked rewrites sessions.jsonl from SQLite.
func (b *Backend) persistSessionsLocked() error {
	records, err := b.sessionRecordsLocked()
	if err != nil {
		return err
	}
	lines := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding session %s: %w", r.SessionID, err)
		}
		lines = append(lines, line)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, sessionsJSONL), lines)
}
