package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadAllJSONL inserts every JSONL record into SQLite in one transaction:
// all succeed or the database stays empty. Records that fail to decode are
// skipped like malformed lines; unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	sessions, err := readJSONL(filepath.Join(dataDir, sessionsJSONL))
	if err != nil {
		return err
	}
	for _, raw := range sessions {
		var r sessionRecord
		if err := json.Unmarshal(raw, &r); err != nil || r.SessionID == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO sessions (session_id, name, initial, created_at) VALUES (?, ?, ?, ?)`,
			r.SessionID, r.Name, string(r.Initial), r.CreatedAt,
		); err != nil {
			return fmt.Errorf("loading session %s: %w", r.SessionID, err)
		}
	}

	actions, err := readJSONL(filepath.Join(dataDir, actionsJSONL))
	if err != nil {
		return err
	}
	for _, raw := range actions {
		var r actionRecord
		if err := json.Unmarshal(raw, &r); err != nil || r.ActionID == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO actions (action_id, session_id, seq, type, action, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ActionID, r.SessionID, r.Seq, r.Type, string(r.Action), r.CreatedAt,
		); err != nil {
			return fmt.Errorf("loading action %s: %w", r.ActionID, err)
		}
	}

	return tx.Commit()
}
