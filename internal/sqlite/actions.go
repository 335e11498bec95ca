package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// Record appends a to the action log of the session. Seq numbers start at 1
// and increase by one per recorded action.
func (b *Backend) Record(sessionID string, a types.Action) (types.ActionRecord, error) {
	data, err := types.MarshalAction(a)
	if err != nil {
		return types.ActionRecord{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ActionRecord{}, types.ErrBackendDetached
	}

	var exists int
	err = b.db.QueryRow(`SELECT 1 FROM sessions WHERE session_id = ?`, sessionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ActionRecord{}, types.ErrNotFound
	}
	if err != nil {
		return types.ActionRecord{}, fmt.Errorf("query session: %w", err)
	}

	var last sql.NullInt64
	if err := b.db.QueryRow(`SELECT MAX(seq) FROM actions WHERE session_id = ?`, sessionID).Scan(&last); err != nil {
		return types.ActionRecord{}, fmt.Errorf("query last seq: %w", err)
	}

	r := actionRecord{
		ActionID:  generateUUID(),
		SessionID: sessionID,
		Seq:       last.Int64 + 1,
		Type:      string(a.Type()),
		Action:    data,
		CreatedAt: formatTime(time.Now()),
	}
	if _, err := b.db.Exec(
		`INSERT INTO actions (action_id, session_id, seq, type, action, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ActionID, r.SessionID, r.Seq, r.Type, string(r.Action), r.CreatedAt,
	); err != nil {
		return types.ActionRecord{}, fmt.Errorf("insert action: %w", err)
	}
	if err := b.persistActionsLocked(); err != nil {
		return types.ActionRecord{}, err
	}

	b.logger.Debug("action recorded",
		zap.String("session_id", sessionID),
		zap.Int64("seq", r.Seq),
		zap.String("type", r.Type))
	return r.toActionRecord()
}

// Actions returns the session's action log in seq order.
func (b *Backend) Actions(sessionID string) ([]types.ActionRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	records, err := b.actionRecordsLocked(`WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ActionRecord, 0, len(records))
	for _, r := range records {
		ar, err := r.toActionRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, nil
}

func (b *Backend) actionRecordsLocked(where string, args ...any) ([]actionRecord, error) {
	rows, err := b.db.Query(
		`SELECT action_id, session_id, seq, type, action, created_at FROM actions `+where+` ORDER BY session_id, seq`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var records []actionRecord
	for rows.Next() {
		var r actionRecord
		var action string
		if err := rows.Scan(&r.ActionID, &r.SessionID, &r.Seq, &r.Type, &action, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		r.Action = json.RawMessage(action)
		records = append(records, r)
	}
	return records, rows.Err()
}

// persistActionsLocked rewrites actions.jsonl from SQLite.
func (b *Backend) persistActionsLocked() error {
	records, err := b.actionRecordsLocked("")
	if err != nil {
		return err
	}
	lines := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding action %s: %w", r.ActionID, err)
		}
		lines = append(lines, line)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, actionsJSONL), lines)
}

// SessionRecorder journals the actions of one session. It satisfies
// reducer.Recorder.
type SessionRecorder struct {
	History   types.History
	SessionID string
}

// Record appends a to the session.
func (r SessionRecorder) Record(a types.Action) error {
	_, err := r.History.Record(r.SessionID, a)
	return err
}
