package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"treehouse/internal/adapter/repo/memory"
	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func seededRepo(t *testing.T) ports.EventRepository {
	t.Helper()
	repo := memory.NewEventRepo(memory.NewStore())
	ctx := context.Background()
	state := buddy.NewState(testNow)
	steps := []func(buddy.State, time.Time) buddy.Result{
		func(s buddy.State, now time.Time) buddy.Result { return buddy.Feed(s, "apple", now) },
		buddy.Pet,
		buddy.Play,
		func(s buddy.State, now time.Time) buddy.Result { return buddy.AddStars(s, 10, now) },
	}
	for i, step := range steps {
		out := step(state, testNow.Add(time.Duration(i)*time.Hour))
		state = out.UpdatedState
		if err := repo.Append(ctx, "k", state.Version, out.Events); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return repo
}

func TestUseCase_ListsNewestFirstWithLatestNeeds(t *testing.T) {
	uc := UseCase{Key: "k", Events: seededRepo(t)}
	resp, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 4 || resp.Events[0].Event.Type != "stars_added" {
		t.Fatalf("unexpected events: %+v", resp.Events)
	}
	if resp.LatestNeeds == nil || resp.LatestNeeds.Energy != 85 || resp.LatestNeeds.Happiness != 100 {
		t.Fatalf("unexpected latest needs: %+v", resp.LatestNeeds)
	}
}

func TestUseCase_FiltersByTypeAndWindow(t *testing.T) {
	uc := UseCase{Key: "k", Events: seededRepo(t)}
	resp, err := uc.Execute(context.Background(), Request{Types: []string{"buddy_petted", "buddy_played"}, Limit: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Event.Type != "buddy_played" {
		t.Fatalf("unexpected filtered events: %+v", resp.Events)
	}

	resp, err = uc.Execute(context.Background(), Request{
		OccurredFrom: testNow.Add(time.Hour).Unix(),
		OccurredTo:   testNow.Add(2 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 2 || resp.Events[0].Event.Type != "buddy_played" || resp.Events[1].Event.Type != "buddy_petted" {
		t.Fatalf("unexpected window: %+v", resp.Events)
	}
}

func TestUseCase_RejectsBadRequests(t *testing.T) {
	uc := UseCase{Key: "k", Events: seededRepo(t)}
	for _, req := range []Request{
		{Limit: -1},
		{OccurredFrom: 200, OccurredTo: 100},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

type failingEvents struct{ err error }

func (f failingEvents) Append(context.Context, string, int64, []buddy.DomainEvent) error { return f.err }
func (f failingEvents) List(context.Context, string, int) ([]ports.EventRecord, error) {
	return nil, f.err
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("journal down")
	uc := UseCase{Key: "k", Events: failingEvents{err: wantErr}}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
