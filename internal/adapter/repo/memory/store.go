package memory

import (
	"context"
	"sync"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

type Store struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	events    map[string][]ports.EventRecord
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string][]byte),
		events:    make(map[string][]ports.EventRecord),
	}
}

// SeedState stores state under key as if it had been saved.
func (s *Store) SeedState(key string, state buddy.State) error {
	b, err := encodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = b
	return nil
}

// SeedRaw stores an arbitrary document, used to exercise decode failures.
func (s *Store) SeedRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = append([]byte(nil), raw...)
}

type txKeyType struct{}

var txKey = txKeyType{}

// lock takes the store mutex unless ctx already runs inside RunInTx.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey) == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
