package sqliterepo

import (
	"context"
	"time"
)

// SaveRaw writes a snapshot document verbatim.
func (r SnapshotRepo) SaveRaw(ctx context.Context, key, document string) error {
	_, err := r.db.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (storage_key, document, version, saved_at) VALUES (?, ?, 0, ?)",
		key, document, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// appendRawEvent writes a journal row without encoding its fields.
func appendRawEvent(ctx context.Context, db *DB, key, id, occurredAt, payload string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (event_id, storage_key, version, type, occurred_at, payload, recorded_at)
		 VALUES (?, ?, 1, 'buddy_fed', ?, ?, ?)`,
		id, key, occurredAt, payload, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}
