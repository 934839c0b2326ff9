// Package keeper owns the one live buddy aggregate. Every mutation goes
// through Apply, which runs the domain function under the writer lock, saves
// the full snapshot and journal in one transaction, then publishes the new
// view to subscribers.
package keeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

// Mutation is a pure domain step applied to the live state.
type Mutation func(state buddy.State, now time.Time) buddy.Result

type Config struct {
	Key       string
	Snapshots ports.SnapshotStore
	Events    ports.EventRepository
	TxManager ports.TxManager
	Metrics   ports.ActionMetrics
	Logger    *slog.Logger
	Now       func() time.Time
}

type Outcome struct {
	View      buddy.View          `json:"state"`
	Events    []buddy.DomainEvent `json:"events"`
	Applied   bool                `json:"applied"`
	Persisted bool                `json:"persisted"`
}

type LoadSource string

const (
	LoadedSnapshot LoadSource = "snapshot"
	LoadedDefaults LoadSource = "defaults"
)

type Keeper struct {
	cfg Config

	mu    sync.Mutex
	state buddy.State

	subMu   sync.Mutex
	subs    map[int]chan buddy.View
	nextSub int
}

func New(cfg Config) *Keeper {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Keeper{
		cfg:   cfg,
		state: buddy.NewState(cfg.Now()),
		subs:  make(map[int]chan buddy.View),
	}
}

// Load restores the snapshot stored under the configured key. A missing,
// unreadable or undecodable snapshot leaves the buddy at its defaults.
func (k *Keeper) Load(ctx context.Context) (buddy.View, LoadSource) {
	k.mu.Lock()
	defer k.mu.Unlock()

	source := LoadedDefaults
	state := buddy.NewState(k.cfg.Now())
	if k.cfg.Snapshots != nil {
		loaded, err := k.loadSnapshot(ctx)
		switch {
		case err == nil:
			state = loaded
			source = LoadedSnapshot
		case errors.Is(err, ports.ErrNotFound):
			k.cfg.Logger.Info("no snapshot stored, starting fresh", "key", k.cfg.Key)
		default:
			k.cfg.Logger.Warn("snapshot unusable, starting fresh", "key", k.cfg.Key, "error", err)
		}
	}
	k.state = state.Normalize()
	view := k.state.View()
	k.publish(view)
	return view, source
}

func (k *Keeper) loadSnapshot(ctx context.Context) (buddy.State, error) {
	var state buddy.State
	load := func(ctx context.Context) error {
		var err error
		state, err = k.cfg.Snapshots.Load(ctx, k.cfg.Key)
		return err
	}
	if k.cfg.TxManager != nil {
		return state, k.cfg.TxManager.RunInTx(ctx, load)
	}
	return state, load(ctx)
}

// Apply runs fn against the live state. Soft no-ops are neither saved nor
// published. A failed save is logged and counted; the in-memory state stays
// authoritative and the next successful save supersedes it.
func (k *Keeper) Apply(ctx context.Context, op string, fn Mutation) Outcome {
	k.mu.Lock()
	defer k.mu.Unlock()

	result := fn(k.state, k.cfg.Now())
	if !result.Changed {
		if k.cfg.Metrics != nil {
			k.cfg.Metrics.RecordNoop(op)
		}
		return Outcome{View: k.state.View()}
	}

	k.state = result.UpdatedState
	persisted := k.persist(ctx, op, result.Events)
	if k.cfg.Metrics != nil {
		k.cfg.Metrics.RecordApplied(op)
	}

	view := k.state.View()
	k.publish(view)
	return Outcome{
		View:      view,
		Events:    result.Events,
		Applied:   true,
		Persisted: persisted,
	}
}

func (k *Keeper) persist(ctx context.Context, op string, events []buddy.DomainEvent) bool {
	if k.cfg.Snapshots == nil {
		return false
	}
	state := k.state
	save := func(ctx context.Context) error {
		if err := k.cfg.Snapshots.Save(ctx, k.cfg.Key, state); err != nil {
			return err
		}
		if k.cfg.Events != nil {
			return k.cfg.Events.Append(ctx, k.cfg.Key, state.Version, events)
		}
		return nil
	}

	var err error
	if k.cfg.TxManager != nil {
		err = k.cfg.TxManager.RunInTx(ctx, save)
	} else {
		err = save(ctx)
	}
	if err != nil {
		k.cfg.Logger.Error("persist buddy snapshot", "op", op, "version", state.Version, "error", err)
		if k.cfg.Metrics != nil {
			k.cfg.Metrics.RecordPersistFailure()
		}
		return false
	}
	return true
}

// Snapshot returns a detached read-only view of the live state.
func (k *Keeper) Snapshot() buddy.View {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state.View()
}

// Subscribe returns a channel receiving the view after every applied change,
// starting with the current one. A subscriber that falls behind loses
// intermediate views, never the latest. cancel closes the channel.
func (k *Keeper) Subscribe(buffer int) (<-chan buddy.View, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan buddy.View, buffer)

	k.mu.Lock()
	current := k.state.View()
	k.subMu.Lock()
	id := k.nextSub
	k.nextSub++
	k.subs[id] = ch
	ch <- current
	k.subMu.Unlock()
	k.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			k.subMu.Lock()
			defer k.subMu.Unlock()
			delete(k.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (k *Keeper) publish(view buddy.View) {
	k.subMu.Lock()
	defer k.subMu.Unlock()
	for _, ch := range k.subs {
		v := view.State.View()
		select {
		case ch <- v:
			continue
		default:
		}
		// Full: drop the oldest pending view. Only publish sends, so the
		// retry always finds room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
