package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

// SnapshotRepo keeps the encoded JSON document, so loads go through the same
// decode path as the durable stores.
type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Load(ctx context.Context, key string) (buddy.State, error) {
	defer r.store.lock(ctx)()
	raw, ok := r.store.snapshots[key]
	if !ok {
		return buddy.State{}, ports.ErrNotFound
	}
	var state buddy.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return buddy.State{}, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return state, nil
}

func (r SnapshotRepo) Save(ctx context.Context, key string, state buddy.State) error {
	b, err := encodeState(state)
	if err != nil {
		return err
	}
	defer r.store.lock(ctx)()
	r.store.snapshots[key] = b
	return nil
}

func encodeState(state buddy.State) ([]byte, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}
