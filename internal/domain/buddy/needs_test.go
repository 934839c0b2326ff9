package buddy

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 42.5, want: 42.5},
		{in: 100, want: 100},
		{in: 130, want: 100},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 100},
	}
	for _, tc := range cases {
		if got := Clamp(tc.in); got != tc.want {
			t.Fatalf("Clamp(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestNeedsMerge_OnlyTouchesPatchedFields(t *testing.T) {
	base := Needs{Hunger: 80, Energy: 90, Happiness: 85}

	got := base.Merge(NeedsPatch{Energy: ptr(150)})
	if got.Energy != 100 {
		t.Fatalf("expected energy clamped to 100, got %v", got.Energy)
	}
	if got.Hunger != 80 || got.Happiness != 85 {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	got = base.Merge(NeedsPatch{Hunger: ptr(-3), Happiness: ptr(12)})
	if got.Hunger != 0 || got.Happiness != 12 || got.Energy != 90 {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}

func TestDecay_StopsAtFloor(t *testing.T) {
	if got := decay(20.1, 0.2, 20); got != 20 {
		t.Fatalf("expected floor 20, got %v", got)
	}
	if got := decay(0.2, 0.5, 0); got != 0 {
		t.Fatalf("expected floor 0, got %v", got)
	}
	if got := decay(50, 0.3, 0); got != 49.7 {
		t.Fatalf("expected 49.7, got %v", got)
	}
}

func ptr(v float64) *float64 { return &v }
