package status

import (
	"context"
	"time"

	"treehouse/internal/domain/buddy"
)

type Reader interface {
	Snapshot() buddy.View
}

type UseCase struct {
	Reader Reader
	// TickInterval converts need forecasts to wall-clock seconds when set.
	TickInterval time.Duration
}

func (u UseCase) Execute(_ context.Context, _ Request) (Response, error) {
	view := u.Reader.Snapshot()
	return Response{
		State:            view,
		StarsToNextLevel: buddy.StarsToNextLevel(view.TotalStars),
		Activities:       activityOptions(view.State),
		Outfits:          outfitOptions(view.State),
		Forecast:         forecastNeeds(view.Needs, u.TickInterval),
	}, nil
}

// activityOptions lists the baseline and level-gated activities first, then
// anything unlocked directly, so the catalogue order stays stable.
func activityOptions(s buddy.State) []ActivityOption {
	out := make([]ActivityOption, 0, len(s.UnlockedActivities)+len(buddy.LevelUnlocks))
	seen := map[string]bool{}
	for _, name := range buddy.BaselineActivities {
		seen[name] = true
		out = append(out, ActivityOption{Name: name, Selectable: s.HasUnlocked(buddy.UnlockActivity, name)})
	}
	for _, u := range buddy.LevelUnlocks {
		if u.Kind != buddy.UnlockActivity || seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		out = append(out, ActivityOption{
			Name:        u.Name,
			Selectable:  s.HasUnlocked(buddy.UnlockActivity, u.Name),
			UnlockLevel: u.Level,
		})
	}
	for _, name := range s.UnlockedActivities {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, ActivityOption{Name: name, Selectable: true})
	}
	return out
}

func outfitOptions(s buddy.State) []OutfitOption {
	out := make([]OutfitOption, 0, len(s.UnlockedOutfits))
	for _, name := range s.UnlockedOutfits {
		out = append(out, OutfitOption{Name: name, Worn: name == s.CurrentOutfit})
	}
	return out
}
