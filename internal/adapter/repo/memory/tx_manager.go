package memory

import (
	"context"

	"treehouse/internal/app/ports"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serialises fn against the store and rolls back every write fn
// made when it returns an error.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey) == t.store {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snapshots := make(map[string][]byte, len(t.store.snapshots))
	for k, v := range t.store.snapshots {
		snapshots[k] = v
	}
	events := make(map[string][]ports.EventRecord, len(t.store.events))
	for k, v := range t.store.events {
		events[k] = v[:len(v):len(v)]
	}

	if err := fn(context.WithValue(ctx, txKey, t.store)); err != nil {
		t.store.snapshots = snapshots
		t.store.events = events
		return err
	}
	return nil
}
