package status

import "treehouse/internal/domain/buddy"

type Request struct{}

type ActivityOption struct {
	Name        string `json:"name"`
	Selectable  bool   `json:"selectable"`
	UnlockLevel int    `json:"unlock_level,omitempty"`
}

type OutfitOption struct {
	Name string `json:"name"`
	Worn bool   `json:"worn"`
}

type Response struct {
	State            buddy.View       `json:"state"`
	StarsToNextLevel int              `json:"stars_to_next_level"`
	Activities       []ActivityOption `json:"activities"`
	Outfits          []OutfitOption   `json:"outfits"`
	Forecast         []NeedForecast   `json:"forecast"`
}
