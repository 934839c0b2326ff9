package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "treehouse/internal/adapter/http"
	metricsinmem "treehouse/internal/adapter/metrics/inmemory"
	"treehouse/internal/adapter/stream"
	"treehouse/internal/app/action"
	"treehouse/internal/app/keeper"
	"treehouse/internal/app/ports"
	"treehouse/internal/app/replay"
	"treehouse/internal/app/status"
	"treehouse/internal/app/tick"
	"treehouse/internal/platform/config"
	"treehouse/internal/platform/storage"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg, logger)
	if err != nil {
		config.Exitf("%v", err)
	}
	defer a.close(logger)

	go a.scheduler.Run(ctx)
	go a.hub.Run(ctx)
	views, cancelViews := a.keeper.Subscribe(8)
	go a.hub.Follow(ctx, views)

	mux := http.NewServeMux()
	mux.Handle("/ws", a.hub)
	streamSrv := &http.Server{Addr: cfg.StreamAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("stream listening", "addr", cfg.StreamAddr)
		if err := streamSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("stream server", "error", err)
			stop()
		}
	}()

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	a.handler.RegisterRoutes(s)
	go func() {
		<-ctx.Done()
		a.scheduler.Stop()
		cancelViews()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("stream shutdown", "error", err)
		}
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
	}()

	logger.Info("treehouse server listening", "addr", cfg.HTTPAddr, "store", a.backend.Kind, "tick", cfg.TickInterval)
	if err := s.Run(); err != nil {
		logger.Error("http server", "error", err)
	}
}

type application struct {
	backend   storage.Backend
	lease     *storage.Lease
	keeper    *keeper.Keeper
	handler   httpadapter.Handler
	hub       *stream.Hub
	scheduler *tick.Scheduler
}

// build opens the configured store, restores the buddy and wires every
// surface onto the one keeper.
func build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	lease, err := storage.Hold(ctx, backend, cfg.StorageKey, "server-"+uuid.NewString(), storage.HoldOptions{
		Wait:   cfg.LeaseWait,
		Logger: logger,
	})
	if err != nil {
		_ = backend.Close()
		if errors.Is(err, ports.ErrLeaseHeld) {
			return nil, fmt.Errorf("%s store is owned by another server: %w", cfg.Store, err)
		}
		return nil, fmt.Errorf("hold writer lease: %w", err)
	}

	kpiRecorder := metricsinmem.NewRecorder()
	k := keeper.New(keeper.Config{
		Key:       cfg.StorageKey,
		Snapshots: backend.Snapshots,
		Events:    backend.Events,
		TxManager: backend.TxManager,
		Metrics:   kpiRecorder,
		Logger:    logger,
	})
	view, source := k.Load(ctx)
	logger.Info("buddy loaded", "source", source, "level", view.Level, "mood", view.Mood)

	actionUC := action.UseCase{Keeper: k, Metrics: kpiRecorder}
	return &application{
		backend: backend,
		lease:   lease,
		keeper:  k,
		handler: httpadapter.Handler{
			ActionUC:    actionUC,
			StatusUC:    status.UseCase{Reader: k, TickInterval: cfg.TickInterval},
			ReplayUC:    replay.UseCase{Key: cfg.StorageKey, Events: backend.Events},
			KPI:         kpiRecorder,
			AllowOrigin: cfg.CORSOrigin,
		},
		hub:       stream.NewHub(actionUC, cfg.CORSOrigin, logger),
		scheduler: &tick.Scheduler{Interval: cfg.TickInterval, Target: actionUC, Logger: logger},
	}, nil
}

// close frees the writer lease before the store goes away.
func (a *application) close(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.lease.Release(ctx); err != nil {
		logger.Warn("release writer lease", "error", err)
	}
	if err := a.backend.Close(); err != nil {
		logger.Warn("close store", "error", err)
	}
}
