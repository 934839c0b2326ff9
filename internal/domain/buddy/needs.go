package buddy

import "math"

// Clamp bounds a gauge write to [MinGauge, MaxGauge].
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return MinGauge
	}
	if v < MinGauge {
		return MinGauge
	}
	if v > MaxGauge {
		return MaxGauge
	}
	return v
}

func (n Needs) Clamped() Needs {
	return Needs{
		Hunger:    Clamp(n.Hunger),
		Energy:    Clamp(n.Energy),
		Happiness: Clamp(n.Happiness),
	}
}

// Merge overlays the touched fields of p, clamping each one independently.
func (n Needs) Merge(p NeedsPatch) Needs {
	out := n
	if p.Hunger != nil {
		out.Hunger = Clamp(*p.Hunger)
	}
	if p.Energy != nil {
		out.Energy = Clamp(*p.Energy)
	}
	if p.Happiness != nil {
		out.Happiness = Clamp(*p.Happiness)
	}
	return out
}

// decay lowers v by step, bounded below by floor, rounded to hundredths so
// repeated decrements land exactly on the floor.
func decay(v, step, floor float64) float64 {
	next := math.Round((v-step)*100) / 100
	if next < floor {
		next = floor
	}
	return Clamp(next)
}

