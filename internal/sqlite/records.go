package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/shelves/pkg/types"
)

// sessionRecord is the JSONL form of a session.
type sessionRecord struct {
	SessionID string          `json:"session_id"`
	Name      string          `json:"name"`
	Initial   json.RawMessage `json:"initial"`
	CreatedAt string          `json:"created_at"`
}

// actionRecord is the JSONL form of a recorded action.
type actionRecord struct {
	ActionID  string          `json:"action_id"`
	SessionID string          `json:"session_id"`
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Action    json.RawMessage `json:"action"`
	CreatedAt string          `json:"created_at"`
}

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func (r sessionRecord) toSession() (types.Session, error) {
	var initial types.Shelf
	if err := json.Unmarshal(r.Initial, &initial); err != nil {
		return types.Session{}, fmt.Errorf("decoding initial shelf of session %s: %w", r.SessionID, err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return types.Session{}, fmt.Errorf("parsing created_at of session %s: %w", r.SessionID, err)
	}
	return types.Session{
		SessionID: r.SessionID,
		Name:      r.Name,
		Initial:   initial.Clone(),
		CreatedAt: createdAt,
	}, nil
}

func (r actionRecord) toActionRecord() (types.ActionRecord, error) {
	a, err := types.UnmarshalAction(r.Action)
	if err != nil {
		return types.ActionRecord{}, fmt.Errorf("decoding action %s: %w", r.ActionID, err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return types.ActionRecord{}, fmt.Errorf("parsing created_at of action %s: %w", r.ActionID, err)
	}
	return types.ActionRecord{
		ActionID:  r.ActionID,
		SessionID: r.SessionID,
		Seq:       r.Seq,
		Action:    a,
		CreatedAt: createdAt,
	}, nil
}
