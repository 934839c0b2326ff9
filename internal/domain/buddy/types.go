package buddy

import "time"

type Needs struct {
	Hunger    float64 `json:"hunger"`
	Energy    float64 `json:"energy"`
	Happiness float64 `json:"happiness"`
}

// NeedsPatch is a partial needs update; nil fields are left untouched.
type NeedsPatch struct {
	Hunger    *float64 `json:"hunger,omitempty"`
	Energy    *float64 `json:"energy,omitempty"`
	Happiness *float64 `json:"happiness,omitempty"`
}

func (p NeedsPatch) Empty() bool {
	return p.Hunger == nil && p.Energy == nil && p.Happiness == nil
}

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodTired   Mood = "tired"
	MoodHungry  Mood = "hungry"
	MoodExcited Mood = "excited"
)

// MoodTransition records how the current mood was produced.
type MoodTransition string

const (
	MoodResolved      MoodTransition = "resolved"
	MoodSleepOverride MoodTransition = "sleep_override"
)

type UnlockKind string

const (
	UnlockOutfit   UnlockKind = "outfit"
	UnlockActivity UnlockKind = "activity"
	UnlockItem     UnlockKind = "item"
)

func (k UnlockKind) IsValid() bool {
	switch k {
	case UnlockOutfit, UnlockActivity, UnlockItem:
		return true
	default:
		return false
	}
}

type Inventory struct {
	FoodItems map[string]int `json:"food_items"`
	Toys      []string       `json:"toys"`
}

type State struct {
	Level               int        `json:"level"`
	Experience          int        `json:"experience"`
	Needs               Needs      `json:"needs"`
	CurrentOutfit       string     `json:"current_outfit"`
	TotalStars          int        `json:"total_stars"`
	CurrentStreak       int        `json:"current_streak"`
	ActivitiesCompleted int        `json:"activities_completed"`
	LastPlayed          *time.Time `json:"last_played"`
	UnlockedOutfits     []string   `json:"unlocked_outfits"`
	UnlockedActivities  []string   `json:"unlocked_activities"`
	UnlockedItems       []string   `json:"unlocked_items"`
	Badges              []string   `json:"badges"`
	Inventory
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`

	mood           Mood
	moodTransition MoodTransition
}

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

type Result struct {
	UpdatedState State         `json:"updated_state"`
	Events       []DomainEvent `json:"events"`
	Changed      bool          `json:"changed"`
}

// View is the read-only snapshot handed to presentation code.
type View struct {
	State
	Mood           Mood           `json:"mood"`
	MoodTransition MoodTransition `json:"mood_transition"`
}
