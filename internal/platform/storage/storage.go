// Package storage selects and opens the configured persistence backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"treehouse/db/migrations"
	gormrepo "treehouse/internal/adapter/repo/gorm"
	"treehouse/internal/adapter/repo/memory"
	sqliterepo "treehouse/internal/adapter/repo/sqlite"
	"treehouse/internal/app/ports"
	"treehouse/internal/platform/config"
)

type Backend struct {
	Kind      string
	Snapshots ports.SnapshotStore
	Events    ports.EventRepository
	TxManager ports.TxManager
	// Leases is nil for stores private to one process.
	Leases    ports.LeaseStore
	close     func() error
}

func (b Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		return Backend{
			Kind:      cfg.Store,
			Snapshots: memory.NewSnapshotRepo(store),
			Events:    memory.NewEventRepo(store),
			TxManager: memory.NewTxManager(store),
		}, nil

	case config.StoreSQLite:
		db, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return Backend{}, err
		}
		logger.Info("sqlite store opened", "path", cfg.SQLitePath)
		return Backend{
			Kind:      cfg.Store,
			Snapshots: sqliterepo.NewSnapshotRepo(db),
			Events:    sqliterepo.NewEventRepo(db),
			TxManager: sqliterepo.NewTxManager(db),
			Leases:    sqliterepo.NewLeaseRepo(db),
			close:     db.Close,
		}, nil

	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return Backend{}, err
		}
		var applied []string
		if cfg.MigrationsDir != "" {
			applied, err = gormrepo.ApplyMigrationsDir(ctx, db, cfg.MigrationsDir)
		} else {
			applied, err = gormrepo.ApplyMigrations(ctx, db, migrations.FS)
		}
		if err != nil {
			return Backend{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres store opened", "migrations_applied", len(applied))
		sqlDB, err := db.DB()
		if err != nil {
			return Backend{}, fmt.Errorf("postgres handle: %w", err)
		}
		return Backend{
			Kind:      cfg.Store,
			Snapshots: gormrepo.NewSnapshotRepo(db),
			Events:    gormrepo.NewEventRepo(db),
			TxManager: gormrepo.NewTxManager(db),
			Leases:    gormrepo.NewLeaseRepo(db),
			close:     sqlDB.Close,
		}, nil

	default:
		return Backend{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
