package sqliterepo

import (
	"context"
	"fmt"
	"time"

	"treehouse/internal/app/ports"
)

// LeaseRepo keeps writer leases in the same file as the snapshot, so every
// process opening the file sees them. Expiry is stored as unix milliseconds.
type LeaseRepo struct {
	db  *DB
	now func() time.Time
}

func NewLeaseRepo(db *DB) LeaseRepo {
	return LeaseRepo{db: db, now: time.Now}
}

func (r LeaseRepo) Acquire(ctx context.Context, key, holder string, ttl time.Duration) error {
	now := r.now()
	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO leases (storage_key, holder, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(storage_key) DO UPDATE SET holder = excluded.holder, expires_at = excluded.expires_at
		 WHERE leases.holder = excluded.holder OR leases.expires_at <= ?`,
		key, holder, now.Add(ttl).UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("acquire lease %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("acquire lease %q: %w", key, err)
	}
	if n == 0 {
		return ports.ErrLeaseHeld
	}
	return nil
}

func (r LeaseRepo) Release(ctx context.Context, key, holder string) error {
	_, err := r.db.conn.ExecContext(ctx,
		"DELETE FROM leases WHERE storage_key = ? AND holder = ?", key, holder)
	if err != nil {
		return fmt.Errorf("release lease %q: %w", key, err)
	}
	return nil
}
