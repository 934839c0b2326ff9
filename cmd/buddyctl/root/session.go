package root

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"treehouse/internal/app/action"
	"treehouse/internal/app/keeper"
	"treehouse/internal/app/ports"
	"treehouse/internal/app/replay"
	"treehouse/internal/app/status"
	"treehouse/internal/platform/config"
	"treehouse/internal/platform/storage"
)

// cliLeaseTTL is short so a crashed invocation does not lock a server out
// for long.
const cliLeaseTTL = 10 * time.Second

// session is one CLI invocation's view of the buddy. It writes the store
// directly when the store is free, and goes through the server's API when a
// running server owns it.
type session interface {
	Act(ctx context.Context, req action.Request) (action.Response, error)
	Status(ctx context.Context) (status.Response, error)
	Events(ctx context.Context, req replay.Request) (replay.Response, error)
}

type localSession struct {
	actions action.UseCase
	status  status.UseCase
	replay  replay.UseCase
}

func (s localSession) Act(ctx context.Context, req action.Request) (action.Response, error) {
	return s.actions.Execute(ctx, req)
}

func (s localSession) Status(ctx context.Context) (status.Response, error) {
	return s.status.Execute(ctx, status.Request{})
}

func (s localSession) Events(ctx context.Context, req replay.Request) (replay.Response, error) {
	return s.replay.Execute(ctx, req)
}

func openSession(ctx context.Context) (session, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.SlogLevel()
	if level == slog.LevelInfo {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	lease, err := storage.Hold(ctx, backend, cfg.StorageKey, "buddyctl-"+uuid.NewString(), storage.HoldOptions{
		TTL:    cliLeaseTTL,
		Logger: logger,
	})
	if errors.Is(err, ports.ErrLeaseHeld) {
		_ = backend.Close()
		logger.Info("store owned by a running server, forwarding", "server", cfg.ServerBaseURL())
		remote, err := newRemoteSession(cfg.ServerBaseURL())
		if err != nil {
			return nil, nil, err
		}
		return remote, func() {}, nil
	}
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}

	k := keeper.New(keeper.Config{
		Key:       cfg.StorageKey,
		Snapshots: backend.Snapshots,
		Events:    backend.Events,
		TxManager: backend.TxManager,
		Logger:    logger,
	})
	k.Load(ctx)

	cleanup := func() {
		if err := lease.Release(context.Background()); err != nil {
			logger.Warn("release writer lease", "error", err)
		}
		_ = backend.Close()
	}
	return localSession{
		actions: action.UseCase{Keeper: k},
		status:  status.UseCase{Reader: k, TickInterval: cfg.TickInterval},
		replay:  replay.UseCase{Key: cfg.StorageKey, Events: backend.Events},
	}, cleanup, nil
}
