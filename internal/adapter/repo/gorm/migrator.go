package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const createMetaTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// ApplyMigrationsDir is ApplyMigrations over a directory on disk.
func ApplyMigrationsDir(ctx context.Context, db *gorm.DB, dir string) ([]string, error) {
	return ApplyMigrations(ctx, db, os.DirFS(dir))
}

// ApplyMigrations runs every *.sql file at the root of fsys that
// schema_migrations has not recorded yet, in lexical order, one transaction
// per file. It returns the versions it applied.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS) ([]string, error) {
	if err := db.WithContext(ctx).Exec(createMetaTableSQL).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(files))
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		var count int64
		if err := db.WithContext(ctx).Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, version, time.Now()).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}
	return applied, nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); path.Ext(name) == ".sql" {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}
