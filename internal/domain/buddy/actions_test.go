package buddy

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFeed_AppleFromInitialState(t *testing.T) {
	state := NewState(testNow)

	out := Feed(state, "apple", testNow)
	if !out.Changed {
		t.Fatalf("expected feed to apply")
	}
	got := out.UpdatedState
	if got.Needs.Hunger != 95 || got.Needs.Happiness != 90 {
		t.Fatalf("expected hunger=95 happiness=90, got %+v", got.Needs)
	}
	if got.FoodItems["apple"] != 2 {
		t.Fatalf("expected apple stock 2, got %d", got.FoodItems["apple"])
	}
	if got.Mood() != MoodExcited {
		t.Fatalf("expected mood recomputed from needs, got %s", got.Mood())
	}
	if state.FoodItems["apple"] != 3 {
		t.Fatalf("input state was mutated: apple=%d", state.FoodItems["apple"])
	}
	if len(out.Events) != 1 || out.Events[0].Type != "buddy_fed" {
		t.Fatalf("expected buddy_fed event, got %+v", out.Events)
	}
}

func TestFeed_ZeroStockLeavesStateUnchanged(t *testing.T) {
	state := NewState(testNow)
	state.FoodItems["apple"] = 0
	before, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := Feed(state, "apple", testNow.Add(time.Minute))
	if out.Changed {
		t.Fatalf("expected soft no-op")
	}
	if len(out.Events) != 0 {
		t.Fatalf("expected no events, got %+v", out.Events)
	}
	after, err := json.Marshal(out.UpdatedState)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("state changed:\nbefore=%s\nafter=%s", before, after)
	}
	if !reflect.DeepEqual(state, out.UpdatedState) {
		t.Fatalf("state not deeply equal after no-op")
	}
}

func TestFeed_UnknownAndMissingFood(t *testing.T) {
	state := NewState(testNow)
	state.FoodItems["mystery"] = 1
	state.Needs.Hunger = 50

	out := Feed(state, "mystery", testNow)
	if got := out.UpdatedState.Needs.Hunger; got != 50+DefaultFoodHungerGain {
		t.Fatalf("expected default gain, got hunger %v", got)
	}

	if out := Feed(state, "pizza", testNow); out.Changed {
		t.Fatalf("expected no-op for food with no stock entry")
	}
}

func TestFeed_FoodValues(t *testing.T) {
	for food, gain := range map[string]float64{"apple": 15, "cookie": 10, "carrot": 12, "pizza": 20} {
		state := NewState(testNow)
		state.Needs.Hunger = 10
		state.FoodItems[food] = 1
		out := Feed(state, food, testNow)
		if got := out.UpdatedState.Needs.Hunger; got != 10+gain {
			t.Fatalf("%s: expected hunger %v, got %v", food, 10+gain, got)
		}
		if out.UpdatedState.FoodItems[food] != 0 {
			t.Fatalf("%s: expected stock 0", food)
		}
	}
}

func TestPet_ClampsHappiness(t *testing.T) {
	state := NewState(testNow)
	state.Needs.Happiness = 99
	out := Pet(state, testNow)
	if got := out.UpdatedState.Needs.Happiness; got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestPlay_ThreeTimes(t *testing.T) {
	state := NewState(testNow)
	wantHappiness := []float64{95, 100, 100}
	wantEnergy := []float64{85, 80, 75}
	for i := 0; i < 3; i++ {
		state = Play(state, testNow).UpdatedState
		if state.Needs.Happiness != wantHappiness[i] {
			t.Fatalf("play %d: happiness=%v want %v", i+1, state.Needs.Happiness, wantHappiness[i])
		}
		if state.Needs.Energy != wantEnergy[i] {
			t.Fatalf("play %d: energy=%v want %v", i+1, state.Needs.Energy, wantEnergy[i])
		}
		if state.Mood() != ResolveMood(state.Needs) {
			t.Fatalf("play %d: stale mood %s", i+1, state.Mood())
		}
	}
}

func TestPlay_EnergyFloorsAtZero(t *testing.T) {
	state := NewState(testNow)
	state.Needs.Energy = 3
	out := Play(state, testNow)
	if out.UpdatedState.Needs.Energy != 0 {
		t.Fatalf("expected energy 0, got %v", out.UpdatedState.Needs.Energy)
	}
	if out.UpdatedState.Mood() != MoodTired {
		t.Fatalf("expected tired, got %s", out.UpdatedState.Mood())
	}
}

func TestSleep_ForcesHappyMood(t *testing.T) {
	state := NewState(testNow)
	state.Needs = Needs{Hunger: 5, Energy: 10, Happiness: 5}

	out := Sleep(state, testNow)
	got := out.UpdatedState
	if got.Needs.Energy != 100 {
		t.Fatalf("expected energy 100, got %v", got.Needs.Energy)
	}
	if got.Needs.Hunger != 5 || got.Needs.Happiness != 5 {
		t.Fatalf("sleep touched other gauges: %+v", got.Needs)
	}
	if got.Mood() != MoodHappy {
		t.Fatalf("expected happy, got %s", got.Mood())
	}
	if got.MoodTransition() != MoodSleepOverride {
		t.Fatalf("expected sleep override transition, got %s", got.MoodTransition())
	}

	next := Pet(got, testNow).UpdatedState
	if next.Mood() != MoodHungry || next.MoodTransition() != MoodResolved {
		t.Fatalf("expected resolver to take over after sleep, got %s/%s", next.Mood(), next.MoodTransition())
	}
}

func TestUpdateNeeds(t *testing.T) {
	state := NewState(testNow)
	if out := UpdateNeeds(state, NeedsPatch{}, testNow); out.Changed {
		t.Fatalf("expected empty patch to be a no-op")
	}
	out := UpdateNeeds(state, NeedsPatch{Hunger: ptr(20)}, testNow)
	if out.UpdatedState.Needs.Hunger != 20 || out.UpdatedState.Mood() != MoodHungry {
		t.Fatalf("unexpected result %+v mood=%s", out.UpdatedState.Needs, out.UpdatedState.Mood())
	}
}

func TestWearOutfit(t *testing.T) {
	state := NewState(testNow)
	if out := WearOutfit(state, "pirate", testNow); out.Changed {
		t.Fatalf("expected locked outfit to be ignored")
	}
	state = Unlock(state, UnlockOutfit, "pirate", testNow).UpdatedState
	out := WearOutfit(state, "pirate", testNow)
	if !out.Changed || out.UpdatedState.CurrentOutfit != "pirate" {
		t.Fatalf("expected outfit pirate, got %q", out.UpdatedState.CurrentOutfit)
	}
}

func TestActions_VersionAdvancesOnlyOnChange(t *testing.T) {
	state := NewState(testNow)
	state = Pet(state, testNow).UpdatedState
	if state.Version != 1 {
		t.Fatalf("expected version 1, got %d", state.Version)
	}
	state.FoodItems["apple"] = 0
	state = Feed(state, "apple", testNow).UpdatedState
	if state.Version != 1 {
		t.Fatalf("expected version unchanged, got %d", state.Version)
	}
}

func TestClampInvariant_RandomizedSequence(t *testing.T) {
	state := NewState(testNow)
	state.FoodItems["pizza"] = 1000
	ops := []func(State) State{
		func(s State) State { return Feed(s, "pizza", testNow).UpdatedState },
		func(s State) State { return Pet(s, testNow).UpdatedState },
		func(s State) State { return Play(s, testNow).UpdatedState },
		func(s State) State { return Sleep(s, testNow).UpdatedState },
		func(s State) State { return Tick(s, testNow).UpdatedState },
	}
	seq := []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 4, 4, 0, 0, 0, 1, 3, 4, 2, 2, 0}
	for i := 0; i < 40; i++ {
		for _, idx := range seq {
			state = ops[idx](state)
			for _, v := range []float64{state.Needs.Hunger, state.Needs.Energy, state.Needs.Happiness} {
				if v < 0 || v > 100 {
					t.Fatalf("gauge out of range after op %d: %+v", idx, state.Needs)
				}
			}
			if state.MoodTransition() == MoodResolved && state.Mood() != ResolveMood(state.Needs) {
				t.Fatalf("stale mood %s for %+v", state.Mood(), state.Needs)
			}
		}
	}
}
