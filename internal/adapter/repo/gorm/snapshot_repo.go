package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"treehouse/internal/adapter/repo/gorm/model"
	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Load(ctx context.Context, key string) (buddy.State, error) {
	var m model.BuddySnapshot
	if err := conn(ctx, r.db).Where("storage_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return buddy.State{}, ports.ErrNotFound
		}
		return buddy.State{}, err
	}
	var state buddy.State
	if err := json.Unmarshal(m.Document, &state); err != nil {
		return buddy.State{}, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return state, nil
}

// Save upserts the whole document. Level and stars are mirrored into columns
// for ad hoc queries only; the document is authoritative.
func (r SnapshotRepo) Save(ctx context.Context, key string, state buddy.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	m := model.BuddySnapshot{
		StorageKey: key,
		Document:   b,
		Version:    state.Version,
		Level:      int32(state.Level),
		TotalStars: int32(state.TotalStars),
		SavedAt:    time.Now().UTC(),
	}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "version", "level", "total_stars", "saved_at"}),
	}).Create(&m).Error
}
