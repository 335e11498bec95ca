package sqlite

// Schema DDL for the history tables.
const (
	createSessions = `CREATE TABLE sessions (
    session_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    initial TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createActions = `CREATE TABLE actions (
    action_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    type TEXT NOT NULL,
    action TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (session_id, seq),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);`

	createActionsSessionIndex = `CREATE INDEX idx_actions_session ON actions(session_id, seq);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createSessions,
	createActions,
	createActionsSessionIndex,
}

// JSONL file names in the data directory. These files are the source of
// truth; the SQLite database is rebuilt from them on every Attach.
const (
	sessionsJSONL = "sessions.jsonl"
	actionsJSONL  = "actions.jsonl"
	databaseFile  = "history.db"
)

// jsonlFiles lists the JSONL files created on Attach.
var jsonlFiles = []string{sessionsJSONL, actionsJSONL}
