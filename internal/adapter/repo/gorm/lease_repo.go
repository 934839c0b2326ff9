package gormrepo

import (
	"context"
	"fmt"
	"time"

	"treehouse/internal/app/ports"

	"gorm.io/gorm"
)

type LeaseRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLeaseRepo(db *gorm.DB) LeaseRepo {
	return LeaseRepo{db: db, now: time.Now}
}

func (r LeaseRepo) Acquire(ctx context.Context, key, holder string, ttl time.Duration) error {
	now := r.now()
	res := conn(ctx, r.db).Exec(
		`INSERT INTO buddy_leases (storage_key, holder, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (storage_key) DO UPDATE SET holder = EXCLUDED.holder, expires_at = EXCLUDED.expires_at
		 WHERE buddy_leases.holder = EXCLUDED.holder OR buddy_leases.expires_at <= ?`,
		key, holder, now.Add(ttl).UnixMilli(), now.UnixMilli(),
	)
	if res.Error != nil {
		return fmt.Errorf("acquire lease %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrLeaseHeld
	}
	return nil
}

func (r LeaseRepo) Release(ctx context.Context, key, holder string) error {
	err := conn(ctx, r.db).Exec(
		"DELETE FROM buddy_leases WHERE storage_key = ? AND holder = ?", key, holder).Error
	if err != nil {
		return fmt.Errorf("release lease %q: %w", key, err)
	}
	return nil
}
