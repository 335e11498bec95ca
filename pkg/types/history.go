package types

import "time"

// Session is a recorded editing session: the shelf it started from and the
// actions dispatched since, kept for replay and debugging.
type Session struct {
	SessionID string    `json:"session_id"` // UUID v7, generated on creation.
	Name      string    `json:"name"`       // Human-readable name (required, non-empty).
	Initial   Shelf     `json:"initial"`    // Shelf state when the session started.
	CreatedAt time.Time `json:"created_at"` // Timestamp of creation.
}

// ActionRecord is one dispatched action in a session.
type ActionRecord struct {
	ActionID  string    `json:"action_id"`  // UUID v7, generated on record.
	SessionID string    `json:"session_id"` // Owning session.
	Seq       int64     `json:"seq"`        // Position in the session, starting at 1.
	Action    Action    `json:"-"`          // The dispatched action; see MarshalJSON.
	CreatedAt time.Time `json:"created_at"` // Timestamp of dispatch.
}

// History defines backend-agnostic storage for editing sessions. Callers
// attach to a backend, record actions, and detach when done.
type History interface {
	// Attach connects to the backend described by config, creating the
	// DataDir if needed. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. After Detach, other
	// operations return ErrBackendDetached.
	Detach() error

	// CreateSession starts a session from initial. Returns ErrInvalidName
	// when name is empty.
	CreateSession(name string, initial Shelf) (Session, error)

	// GetSession returns the session with the given ID or ErrNotFound.
	GetSession(sessionID string) (Session, error)

	// ListSessions returns all sessions, oldest first.
	ListSessions() ([]Session, error)

	// Record appends a to the session's action log.
	Record(sessionID string, a Action) (ActionRecord, error)

	// Actions returns the session's action log in dispatch order.
	Actions(sessionID string) ([]ActionRecord, error)
}
