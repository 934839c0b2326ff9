// Package sqliterepo stores the buddy snapshot and its journal in a local
// SQLite file. It is the default store for the server and the CLI.
package sqliterepo

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps transactions and plain reads from racing for
	// the write lock.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		storage_key TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		version INTEGER NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL UNIQUE,
		storage_key TEXT NOT NULL,
		version INTEGER NOT NULL,
		type TEXT NOT NULL,
		occurred_at TEXT NOT NULL,
		payload TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_key_seq ON events(storage_key, seq);

	CREATE TABLE IF NOT EXISTS leases (
		storage_key TEXT PRIMARY KEY,
		holder TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}
