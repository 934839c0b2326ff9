package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"treehouse/internal/app/ports"
)

const (
	DefaultLeaseTTL = 30 * time.Second
	leaseRetry      = 200 * time.Millisecond
)

type HoldOptions struct {
	TTL time.Duration
	// Wait bounds how long Hold keeps retrying a lease owned by another
	// holder. Zero means a single attempt.
	Wait   time.Duration
	Logger *slog.Logger
}

// Lease is a writer lease held on a storage key. It renews itself every
// third of its TTL until Release.
type Lease struct {
	leases ports.LeaseStore
	key    string
	holder string
	ttl    time.Duration
	logger *slog.Logger

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// Hold takes the writer lease on key for holder. Backends without a lease
// store (memory) are private to the process and always succeed.
func Hold(ctx context.Context, b Backend, key, holder string, opts HoldOptions) (*Lease, error) {
	if b.Leases == nil {
		return &Lease{}, nil
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	deadline := time.Now().Add(opts.Wait)
	for {
		err := b.Leases.Acquire(ctx, key, holder, ttl)
		if err == nil {
			break
		}
		if !errors.Is(err, ports.ErrLeaseHeld) || !time.Now().Before(deadline) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(leaseRetry):
		}
	}

	l := &Lease{
		leases: b.Leases,
		key:    key,
		holder: holder,
		ttl:    ttl,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.renew()
	logger.Debug("writer lease acquired", "key", key, "holder", holder, "ttl", ttl)
	return l, nil
}

func (l *Lease) renew() {
	defer close(l.done)
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
			err := l.leases.Acquire(ctx, l.key, l.holder, l.ttl)
			cancel()
			if err != nil {
				l.logger.Error("renew writer lease", "key", l.key, "holder", l.holder, "error", err)
			}
		}
	}
}

// Release stops renewal and frees the lease. Later calls do nothing.
func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.leases == nil {
		return nil
	}
	var err error
	l.once.Do(func() {
		close(l.stop)
		<-l.done
		err = l.leases.Release(ctx, l.key, l.holder)
	})
	return err
}
