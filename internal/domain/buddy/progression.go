package buddy

import (
	"strings"
	"time"
)

// AddStars credits stars and levels up every StarsPerLevel. Each level
// unlock crossed by the transition fires once. Negative amounts are ignored
// so the star total never decreases.
func AddStars(state State, amount int, now time.Time) Result {
	if amount <= 0 {
		return unchanged(state)
	}
	next := begin(state, now)
	next.TotalStars += amount
	events := []DomainEvent{{
		Type:       "stars_added",
		OccurredAt: now,
		Payload: map[string]any{
			"amount":      amount,
			"total_stars": next.TotalStars,
		},
	}}

	newLevel := LevelForStars(next.TotalStars)
	if newLevel > state.Level {
		next.Level = newLevel
		events = append(events, DomainEvent{
			Type:       "level_up",
			OccurredAt: now,
			Payload: map[string]any{
				"from": state.Level,
				"to":   newLevel,
			},
		})
		for _, u := range LevelUnlocks {
			if u.Level <= state.Level || u.Level > newLevel {
				continue
			}
			var ok bool
			next, ok = unlockInto(next, u.Kind, u.Name)
			if ok {
				events = append(events, unlockEvent(u.Kind, u.Name, now, "level"))
			}
		}
	}
	return changed(next, events...)
}

func AddExperience(state State, amount int, now time.Time) Result {
	if amount <= 0 {
		return unchanged(state)
	}
	next := begin(state, now)
	next.Experience += amount
	return changed(next, DomainEvent{
		Type:       "experience_added",
		OccurredAt: now,
		Payload: map[string]any{
			"amount":     amount,
			"experience": next.Experience,
		},
	})
}

// CompleteActivity counts a finished activity and stamps LastPlayed. Stars
// are awarded separately by the activity itself.
func CompleteActivity(state State, name string, now time.Time) Result {
	next := begin(state, now)
	next.ActivitiesCompleted++
	next.CurrentStreak = nextStreak(state.LastPlayed, state.CurrentStreak, now)
	played := now
	next.LastPlayed = &played
	return changed(next, DomainEvent{
		Type:       "activity_completed",
		OccurredAt: now,
		Payload: map[string]any{
			"activity":             strings.TrimSpace(name),
			"activities_completed": next.ActivitiesCompleted,
			"current_streak":       next.CurrentStreak,
		},
	})
}

func nextStreak(last *time.Time, streak int, now time.Time) int {
	if last == nil {
		return 1
	}
	switch daysBetween(*last, now) {
	case 0:
		if streak < 1 {
			return 1
		}
		return streak
	case 1:
		return streak + 1
	default:
		return 1
	}
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
