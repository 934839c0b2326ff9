package sqliterepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) EventRepo {
	return EventRepo{db: db}
}

type eventRow struct {
	EventID    string `db:"event_id"`
	Version    int64  `db:"version"`
	Type       string `db:"type"`
	OccurredAt string `db:"occurred_at"`
	Payload    string `db:"payload"`
	RecordedAt string `db:"recorded_at"`
}

func (r EventRepo) Append(ctx context.Context, key string, version int64, events []buddy.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	ext := getExtFromCtx(ctx, r.db.conn)
	recordedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range events {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode event payload: %w", err)
		}
		_, err = ext.ExecContext(ctx,
			`INSERT INTO events (event_id, storage_key, version, type, occurred_at, payload, recorded_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), key, version, e.Type, e.OccurredAt.UTC().Format(time.RFC3339Nano), string(payload), recordedAt,
		)
		if err != nil {
			return fmt.Errorf("append event %s: %w", e.Type, err)
		}
	}
	return nil
}

func (r EventRepo) List(ctx context.Context, key string, limit int) ([]ports.EventRecord, error) {
	query := "SELECT event_id, version, type, occurred_at, payload, recorded_at FROM events WHERE storage_key = ? ORDER BY seq DESC"
	args := []any{key}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []eventRow
	if err := sqlx.SelectContext(ctx, getExtFromCtx(ctx, r.db.conn), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]ports.EventRecord, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if row.Payload != "" {
			if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
				return nil, fmt.Errorf("decode event %s payload: %w", row.EventID, err)
			}
		}
		occurredAt, err := time.Parse(time.RFC3339Nano, row.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("decode event %s occurred_at: %w", row.EventID, err)
		}
		recordedAt, err := time.Parse(time.RFC3339Nano, row.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("decode event %s recorded_at: %w", row.EventID, err)
		}
		out = append(out, ports.EventRecord{
			ID:      row.EventID,
			Version: row.Version,
			Event: buddy.DomainEvent{
				Type:       row.Type,
				OccurredAt: occurredAt,
				Payload:    payload,
			},
			RecordedAt: recordedAt,
		})
	}
	return out, nil
}
