package memory

import (
	"context"
	"time"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"

	"github.com/google/uuid"
)

type EventRepo struct {
	store *Store
	now   func() time.Time
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store, now: time.Now}
}

func (r EventRepo) Append(ctx context.Context, key string, version int64, events []buddy.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	defer r.store.lock(ctx)()
	for _, e := range events {
		r.store.events[key] = append(r.store.events[key], ports.EventRecord{
			ID:         uuid.NewString(),
			Version:    version,
			Event:      e,
			RecordedAt: r.now(),
		})
	}
	return nil
}

func (r EventRepo) List(ctx context.Context, key string, limit int) ([]ports.EventRecord, error) {
	defer r.store.lock(ctx)()
	all := r.store.events[key]
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.EventRecord, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
