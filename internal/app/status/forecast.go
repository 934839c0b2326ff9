package status

import (
	"math"
	"time"

	"treehouse/internal/domain/buddy"
)

// NeedForecast estimates how many decay ticks remain before a need drops
// under the threshold that drives a low mood. Ticks is 0 when the need is
// already below it and -1 when decay alone can never get it there.
type NeedForecast struct {
	Need      string  `json:"need"`
	Mood      string  `json:"mood"`
	Threshold float64 `json:"threshold"`
	Ticks     int     `json:"ticks"`
	Seconds   int64   `json:"seconds,omitempty"`
}

func forecastNeeds(n buddy.Needs, interval time.Duration) []NeedForecast {
	out := []NeedForecast{
		forecast("hunger", buddy.MoodHungry, n.Hunger, buddy.HungryHungerBelow, buddy.TickHungerDecay, buddy.TickHungerFloor),
		forecast("energy", buddy.MoodTired, n.Energy, buddy.TiredEnergyBelow, buddy.TickEnergyDecay, buddy.TickEnergyFloor),
		forecast("happiness", buddy.MoodSad, n.Happiness, buddy.SadHappinessBelow, buddy.TickHappinessDecay, buddy.TickHappinessFloor),
	}
	if interval > 0 {
		for i := range out {
			if out[i].Ticks > 0 {
				out[i].Seconds = int64(time.Duration(out[i].Ticks) * interval / time.Second)
			}
		}
	}
	return out
}

// forecast works in hundredths, matching the rounding applied by each tick.
func forecast(need string, mood buddy.Mood, value, threshold, step, floor float64) NeedForecast {
	f := NeedForecast{Need: need, Mood: string(mood), Threshold: threshold}
	v := hundredths(value)
	t := hundredths(threshold)
	s := hundredths(step)
	switch {
	case v < t:
		f.Ticks = 0
	case hundredths(floor) >= t || s <= 0:
		f.Ticks = -1
	default:
		f.Ticks = int((v-t)/s) + 1
	}
	return f
}

func hundredths(v float64) int64 {
	return int64(math.Round(v * 100))
}
