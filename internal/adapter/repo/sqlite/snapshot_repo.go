package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"

	"github.com/jmoiron/sqlx"
)

type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Load(ctx context.Context, key string) (buddy.State, error) {
	var document string
	err := sqlx.GetContext(ctx, getExtFromCtx(ctx, r.db.conn), &document,
		"SELECT document FROM snapshots WHERE storage_key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return buddy.State{}, ports.ErrNotFound
		}
		return buddy.State{}, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	var state buddy.State
	if err := json.Unmarshal([]byte(document), &state); err != nil {
		return buddy.State{}, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return state, nil
}

func (r SnapshotRepo) Save(ctx context.Context, key string, state buddy.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = getExtFromCtx(ctx, r.db.conn).ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (storage_key, document, version, saved_at) VALUES (?, ?, ?, ?)",
		key, string(b), state.Version, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}
