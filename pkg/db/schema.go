// Package db provides the SQLite operation history: a journal of every
// committed change to an account.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Operation history table
-- One row per committed mutation or catch-up of an account
CREATE TABLE IF NOT EXISTS operation_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,              -- one CLI invocation
    account TEXT NOT NULL,
    operation TEXT NOT NULL,           -- 'new', 'spent', 'got', 'set', 'catch_up'
    amount REAL NOT NULL,              -- signed amount recorded; occurrence count for catch_up
    balance_after REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_operation_history_account
    ON operation_history(account, recorded_at);

CREATE INDEX IF NOT EXISTS idx_operation_history_run
    ON operation_history(run_id);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
