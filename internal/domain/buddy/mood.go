package buddy

// ResolveMood derives the mood from needs. Rules are evaluated in priority
// order and the first match wins.
func ResolveMood(n Needs) Mood {
	switch {
	case n.Energy < TiredEnergyBelow:
		return MoodTired
	case n.Hunger < HungryHungerBelow:
		return MoodHungry
	case n.Happiness < SadHappinessBelow:
		return MoodSad
	case n.Happiness > ExcitedHappinessAbove:
		return MoodExcited
	default:
		return MoodHappy
	}
}

func (s State) Mood() Mood {
	if s.mood == "" {
		return ResolveMood(s.Needs)
	}
	return s.mood
}

func (s State) MoodTransition() MoodTransition {
	if s.moodTransition == "" {
		return MoodResolved
	}
	return s.moodTransition
}

func (s *State) resolveMood() {
	s.mood = ResolveMood(s.Needs)
	s.moodTransition = MoodResolved
}

// forceContentMood is the sleep transition: the buddy always wakes content.
func (s *State) forceContentMood() {
	s.mood = MoodHappy
	s.moodTransition = MoodSleepOverride
}
