package action

import (
	"treehouse/internal/app/keeper"
	"treehouse/internal/domain/buddy"
)

type Type string

const (
	TypeFeed             Type = "feed"
	TypePet              Type = "pet"
	TypePlay             Type = "play"
	TypeSleep            Type = "sleep"
	TypeAddStars         Type = "add_stars"
	TypeAddExperience    Type = "add_experience"
	TypeCompleteActivity Type = "complete_activity"
	TypeUnlock           Type = "unlock"
	TypeAwardBadge       Type = "award_badge"
	TypeUpdateNeeds      Type = "update_needs"
	TypeWearOutfit       Type = "wear_outfit"
	TypeTick             Type = "tick"
)

type Request struct {
	Type     Type             `json:"type"`
	FoodID   string           `json:"food_id,omitempty"`
	Amount   int              `json:"amount,omitempty"`
	Activity string           `json:"activity,omitempty"`
	Kind     buddy.UnlockKind `json:"kind,omitempty"`
	Name     string           `json:"name,omitempty"`
	Needs    buddy.NeedsPatch `json:"needs,omitempty"`
}

type Response = keeper.Outcome
