package buddy

import "time"

func NewState(now time.Time) State {
	s := State{
		Level: 1,
		Needs: Needs{
			Hunger:    InitialHunger,
			Energy:    InitialEnergy,
			Happiness: InitialHappiness,
		},
		CurrentOutfit:      DefaultOutfit,
		UnlockedOutfits:    []string{DefaultOutfit},
		UnlockedActivities: append([]string(nil), BaselineActivities...),
		UnlockedItems:      []string{},
		Badges:             []string{},
		Inventory: Inventory{
			FoodItems: cloneCounts(StarterFood),
			Toys:      append([]string(nil), StarterToys...),
		},
		UpdatedAt: now,
	}
	s.resolveMood()
	return s
}

// Clone returns a copy that shares no collections with s.
func (s State) Clone() State {
	out := s
	out.UnlockedOutfits = cloneSet(s.UnlockedOutfits)
	out.UnlockedActivities = cloneSet(s.UnlockedActivities)
	out.UnlockedItems = cloneSet(s.UnlockedItems)
	out.Badges = cloneSet(s.Badges)
	out.FoodItems = cloneCounts(s.FoodItems)
	out.Toys = cloneSet(s.Toys)
	if s.LastPlayed != nil {
		t := *s.LastPlayed
		out.LastPlayed = &t
	}
	return out
}

// Normalize repairs a restored snapshot: collections are non-nil, baseline
// entries are present, gauges are in range, the level is not behind the star
// total and mood is recomputed from needs.
func (s State) Normalize() State {
	out := s.Clone()
	out.Needs = out.Needs.Clamped()
	out.UnlockedOutfits = addToSet(out.UnlockedOutfits, DefaultOutfit)
	for _, name := range BaselineActivities {
		out.UnlockedActivities = addToSet(out.UnlockedActivities, name)
	}
	if out.UnlockedItems == nil {
		out.UnlockedItems = []string{}
	}
	if out.Badges == nil {
		out.Badges = []string{}
	}
	if out.FoodItems == nil {
		out.FoodItems = map[string]int{}
	}
	for id, n := range out.FoodItems {
		if n < 0 {
			out.FoodItems[id] = 0
		}
	}
	if out.Toys == nil {
		out.Toys = []string{}
	}
	if out.CurrentOutfit == "" || !containsString(out.UnlockedOutfits, out.CurrentOutfit) {
		out.CurrentOutfit = DefaultOutfit
	}
	if out.TotalStars < 0 {
		out.TotalStars = 0
	}
	if lvl := LevelForStars(out.TotalStars); out.Level < lvl {
		out.Level = lvl
	}
	if out.Experience < 0 {
		out.Experience = 0
	}
	out.resolveMood()
	return out
}

func (s State) View() View {
	c := s.Clone()
	return View{
		State:          c,
		Mood:           s.Mood(),
		MoodTransition: s.MoodTransition(),
	}
}

func (s State) HasUnlocked(kind UnlockKind, name string) bool {
	switch kind {
	case UnlockOutfit:
		return containsString(s.UnlockedOutfits, name)
	case UnlockActivity:
		return containsString(s.UnlockedActivities, name)
	case UnlockItem:
		return containsString(s.UnlockedItems, name)
	default:
		return false
	}
}

func containsString(set []string, v string) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

func addToSet(set []string, v string) []string {
	if containsString(set, v) {
		return set
	}
	return append(set, v)
}

func cloneSet(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneCounts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
