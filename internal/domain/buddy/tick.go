package buddy

import "time"

// Tick is the time-driven decay step. Happiness bottoms out at
// TickHappinessFloor here, while action paths may still take it to zero.
// Ticks are not journaled.
func Tick(state State, now time.Time) Result {
	next := begin(state, now)
	next.Needs = Needs{
		Hunger:    decay(state.Needs.Hunger, TickHungerDecay, TickHungerFloor),
		Energy:    decay(state.Needs.Energy, TickEnergyDecay, TickEnergyFloor),
		Happiness: decay(state.Needs.Happiness, TickHappinessDecay, TickHappinessFloor),
	}
	next.resolveMood()
	return changed(next)
}
