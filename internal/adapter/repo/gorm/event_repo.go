package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"treehouse/internal/adapter/repo/gorm/model"
	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, key string, version int64, events []buddy.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.BuddyEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode event payload: %w", err)
		}
		rows = append(rows, model.BuddyEvent{
			EventID:    uuid.NewString(),
			StorageKey: key,
			Version:    version,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return conn(ctx, r.db).Omit("recorded_at").Create(&rows).Error
}

func (r EventRepo) List(ctx context.Context, key string, limit int) ([]ports.EventRecord, error) {
	rows := []model.BuddyEvent{}
	query := conn(ctx, r.db).
		Where(&model.BuddyEvent{StorageKey: key}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "seq"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.EventRecord, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode event %s payload: %w", row.EventID, err)
			}
		}
		out = append(out, ports.EventRecord{
			ID:      row.EventID,
			Version: row.Version,
			Event: buddy.DomainEvent{
				Type:       row.Type,
				OccurredAt: row.OccurredAt,
				Payload:    payload,
			},
			RecordedAt: row.RecordedAt,
		})
	}
	return out, nil
}
