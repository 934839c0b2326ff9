package buddy

import (
	"strings"
	"time"
)

// Feed consumes one unit of foodID. With no stock left the call is a no-op.
func Feed(state State, foodID string, now time.Time) Result {
	foodID = strings.TrimSpace(foodID)
	if state.FoodItems[foodID] <= 0 {
		return unchanged(state)
	}
	next := begin(state, now)
	gain := FoodValue(foodID)
	next.FoodItems[foodID]--
	next.Needs.Hunger = Clamp(next.Needs.Hunger + float64(gain))
	next.Needs.Happiness = Clamp(next.Needs.Happiness + FeedHappinessGain)
	next.resolveMood()
	return changed(next, newEvent("buddy_fed", now, state, next, map[string]any{
		"food_id":     foodID,
		"hunger_gain": gain,
		"remaining":   next.FoodItems[foodID],
	}))
}

func Pet(state State, now time.Time) Result {
	next := begin(state, now)
	next.Needs.Happiness = Clamp(next.Needs.Happiness + PetHappinessGain)
	next.resolveMood()
	return changed(next, newEvent("buddy_petted", now, state, next, nil))
}

func Play(state State, now time.Time) Result {
	next := begin(state, now)
	next.Needs.Happiness = Clamp(next.Needs.Happiness + PlayHappinessGain)
	next.Needs.Energy = Clamp(next.Needs.Energy - PlayEnergyCost)
	next.resolveMood()
	return changed(next, newEvent("buddy_played", now, state, next, nil))
}

// Sleep refills energy and always leaves the buddy content, whatever the
// other gauges say.
func Sleep(state State, now time.Time) Result {
	next := begin(state, now)
	next.Needs.Energy = SleepEnergyLevel
	next.forceContentMood()
	return changed(next, newEvent("buddy_slept", now, state, next, map[string]any{
		"mood_transition": string(MoodSleepOverride),
	}))
}

func UpdateNeeds(state State, patch NeedsPatch, now time.Time) Result {
	if patch.Empty() {
		return unchanged(state)
	}
	next := begin(state, now)
	next.Needs = next.Needs.Merge(patch)
	next.resolveMood()
	return changed(next, newEvent("needs_updated", now, state, next, nil))
}

// WearOutfit switches to an already unlocked outfit.
func WearOutfit(state State, name string, now time.Time) Result {
	name = strings.TrimSpace(name)
	if name == "" || name == state.CurrentOutfit || !containsString(state.UnlockedOutfits, name) {
		return unchanged(state)
	}
	next := begin(state, now)
	next.CurrentOutfit = name
	return changed(next, DomainEvent{
		Type:       "outfit_changed",
		OccurredAt: now,
		Payload: map[string]any{
			"from": state.CurrentOutfit,
			"to":   name,
		},
	})
}

func begin(state State, now time.Time) State {
	next := state.Clone()
	if next.FoodItems == nil {
		next.FoodItems = map[string]int{}
	}
	next.Version++
	next.UpdatedAt = now
	return next
}

func unchanged(state State) Result {
	return Result{UpdatedState: state.Clone()}
}

func changed(next State, events ...DomainEvent) Result {
	return Result{UpdatedState: next, Events: events, Changed: true}
}

func newEvent(typ string, now time.Time, before, after State, extra map[string]any) DomainEvent {
	payload := map[string]any{
		"needs_before": needsPayload(before.Needs),
		"needs_after":  needsPayload(after.Needs),
		"mood":         string(after.Mood()),
	}
	for k, v := range extra {
		payload[k] = v
	}
	return DomainEvent{Type: typ, OccurredAt: now, Payload: payload}
}

func needsPayload(n Needs) map[string]any {
	return map[string]any{
		"hunger":    n.Hunger,
		"energy":    n.Energy,
		"happiness": n.Happiness,
	}
}
