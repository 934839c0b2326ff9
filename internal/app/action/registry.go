package action

import (
	"strings"
	"time"

	"treehouse/internal/app/keeper"
	"treehouse/internal/domain/buddy"
)

type actionSpec struct {
	validate func(Request) bool
	mutation func(Request) keeper.Mutation
}

func actionRegistry() map[Type]actionSpec {
	return map[Type]actionSpec{
		TypeFeed: {
			validate: func(r Request) bool { return r.FoodID != "" },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.Feed(s, r.FoodID, now) }
			},
		},
		TypePet:   {mutation: simple(buddy.Pet)},
		TypePlay:  {mutation: simple(buddy.Play)},
		TypeSleep: {mutation: simple(buddy.Sleep)},
		TypeTick:  {mutation: simple(buddy.Tick)},
		TypeAddStars: {
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.AddStars(s, r.Amount, now) }
			},
		},
		TypeAddExperience: {
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.AddExperience(s, r.Amount, now) }
			},
		},
		TypeCompleteActivity: {
			validate: func(r Request) bool { return r.Activity != "" },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.CompleteActivity(s, r.Activity, now) }
			},
		},
		TypeUnlock: {
			validate: func(r Request) bool { return r.Kind.IsValid() && r.Name != "" },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.Unlock(s, r.Kind, r.Name, now) }
			},
		},
		TypeAwardBadge: {
			validate: func(r Request) bool { return r.Name != "" },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.AwardBadge(s, r.Name, now) }
			},
		},
		TypeUpdateNeeds: {
			validate: func(r Request) bool { return !r.Needs.Empty() },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.UpdateNeeds(s, r.Needs, now) }
			},
		},
		TypeWearOutfit: {
			validate: func(r Request) bool { return r.Name != "" },
			mutation: func(r Request) keeper.Mutation {
				return func(s buddy.State, now time.Time) buddy.Result { return buddy.WearOutfit(s, r.Name, now) }
			},
		},
	}
}

func simple(op func(buddy.State, time.Time) buddy.Result) func(Request) keeper.Mutation {
	return func(Request) keeper.Mutation { return op }
}

// SupportedTypes lists the action types in a stable order.
func SupportedTypes() []Type {
	return []Type{
		TypeFeed, TypePet, TypePlay, TypeSleep,
		TypeAddStars, TypeAddExperience, TypeCompleteActivity,
		TypeUnlock, TypeAwardBadge, TypeUpdateNeeds, TypeWearOutfit, TypeTick,
	}
}

func normalizeRequest(r Request) Request {
	r.Type = Type(strings.ToLower(strings.TrimSpace(string(r.Type))))
	r.FoodID = strings.TrimSpace(r.FoodID)
	r.Activity = strings.TrimSpace(r.Activity)
	r.Kind = buddy.UnlockKind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	r.Name = strings.TrimSpace(r.Name)
	return r
}
