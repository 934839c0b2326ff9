package replay

import (
	"context"
	"errors"
	"strings"

	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Key    string
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 || (req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo) {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filtering := len(req.Types) > 0 || req.OccurredFrom > 0 || req.OccurredTo > 0
	fetch := limit
	if filtering {
		fetch = 0
	}
	records, err := u.Events.List(ctx, u.Key, fetch)
	if err != nil {
		return Response{}, err
	}
	records = filterByType(records, req.Types)
	records = filterByTimeWindow(records, req.OccurredFrom, req.OccurredTo)
	if len(records) > limit {
		records = records[:limit]
	}
	return Response{Events: records, LatestNeeds: latestNeeds(records)}, nil
}

func filterByType(records []ports.EventRecord, types []string) []ports.EventRecord {
	if len(types) == 0 {
		return records
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[strings.TrimSpace(t)] = true
	}
	out := make([]ports.EventRecord, 0, len(records))
	for _, rec := range records {
		if want[rec.Event.Type] {
			out = append(out, rec)
		}
	}
	return out
}

func filterByTimeWindow(records []ports.EventRecord, from, to int64) []ports.EventRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	out := make([]ports.EventRecord, 0, len(records))
	for _, rec := range records {
		ts := rec.Event.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// latestNeeds walks newest first, so the first payload with needs_after wins.
func latestNeeds(records []ports.EventRecord) *buddy.Needs {
	for _, rec := range records {
		after, ok := rec.Event.Payload["needs_after"].(map[string]any)
		if !ok {
			continue
		}
		return &buddy.Needs{
			Hunger:    num(after["hunger"]),
			Energy:    num(after["energy"]),
			Happiness: num(after["happiness"]),
		}
	}
	return nil
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
