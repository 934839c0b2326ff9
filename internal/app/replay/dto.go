package replay

import (
	"treehouse/internal/app/ports"
	"treehouse/internal/domain/buddy"
)

type Request struct {
	Limit        int      `json:"limit"`
	Types        []string `json:"types,omitempty"`
	OccurredFrom int64    `json:"occurred_from,omitempty"`
	OccurredTo   int64    `json:"occurred_to,omitempty"`
}

type Response struct {
	Events []ports.EventRecord `json:"events"`
	// LatestNeeds is read back from the newest event carrying needs_after.
	LatestNeeds *buddy.Needs `json:"latest_needs,omitempty"`
}
