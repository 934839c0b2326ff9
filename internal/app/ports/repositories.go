package ports

import (
	"context"
	"time"

	"treehouse/internal/domain/buddy"
)

// TxManager runs fn with a context carrying one transaction. Stores called
// with that context join it; a nested RunInTx joins the outer transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SnapshotStore holds the full aggregate under a storage key. Save replaces
// whatever was stored before.
type SnapshotStore interface {
	Load(ctx context.Context, key string) (buddy.State, error)
	Save(ctx context.Context, key string, state buddy.State) error
}

type EventRecord struct {
	ID         string            `json:"id"`
	Version    int64             `json:"version"`
	Event      buddy.DomainEvent `json:"event"`
	RecordedAt time.Time         `json:"recorded_at"`
}

type EventRepository interface {
	Append(ctx context.Context, key string, version int64, events []buddy.DomainEvent) error
	// List returns the newest records first. limit <= 0 means no limit.
	List(ctx context.Context, key string, limit int) ([]EventRecord, error)
}

// LeaseStore grants one process at a time the right to write a storage key.
// Acquire succeeds when the key is free, expired, or already held by holder,
// and extends the lease to ttl from now. It returns ErrLeaseHeld otherwise.
type LeaseStore interface {
	Acquire(ctx context.Context, key, holder string, ttl time.Duration) error
	Release(ctx context.Context, key, holder string) error
}
