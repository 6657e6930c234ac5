package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// schema is applied on every Open; CREATE TABLE IF NOT EXISTS keeps it
// idempotent so an existing database file is reused as-is.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (or creates) a local SQLite database file and ensures the
// schema exists.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "portal.db"
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// Pragmas for robustness.
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(schema); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}
