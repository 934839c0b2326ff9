package buddy

import (
	"strings"
	"time"
)

// Unlock adds name to the set for kind. Repeating an unlock is a no-op.
func Unlock(state State, kind UnlockKind, name string, now time.Time) Result {
	name = strings.TrimSpace(name)
	if !kind.IsValid() || name == "" || state.HasUnlocked(kind, name) {
		return unchanged(state)
	}
	next := begin(state, now)
	next, _ = unlockInto(next, kind, name)
	return changed(next, unlockEvent(kind, name, now, "direct"))
}

func AwardBadge(state State, name string, now time.Time) Result {
	name = strings.TrimSpace(name)
	if name == "" || containsString(state.Badges, name) {
		return unchanged(state)
	}
	next := begin(state, now)
	next.Badges = addToSet(next.Badges, name)
	return changed(next, DomainEvent{
		Type:       "badge_awarded",
		OccurredAt: now,
		Payload:    map[string]any{"badge": name},
	})
}

// unlockInto mutates s in place; s must already be a private copy.
func unlockInto(s State, kind UnlockKind, name string) (State, bool) {
	if s.HasUnlocked(kind, name) {
		return s, false
	}
	switch kind {
	case UnlockOutfit:
		s.UnlockedOutfits = addToSet(s.UnlockedOutfits, name)
	case UnlockActivity:
		s.UnlockedActivities = addToSet(s.UnlockedActivities, name)
	case UnlockItem:
		s.UnlockedItems = addToSet(s.UnlockedItems, name)
	default:
		return s, false
	}
	return s, true
}

func unlockEvent(kind UnlockKind, name string, now time.Time, source string) DomainEvent {
	return DomainEvent{
		Type:       "content_unlocked",
		OccurredAt: now,
		Payload: map[string]any{
			"kind":   string(kind),
			"name":   name,
			"source": source,
		},
	}
}
