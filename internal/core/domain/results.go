package domain

import (
	"time"

	"github.com/google/uuid"
)

// Read-side aggregate views. Exactly one of the per-type sections is
// populated, matching the poll's type. Results are recomputed from raw vote
// rows on every read; nothing here is persisted.

type OptionResult struct {
	Option     PollOption `json:"option"`
	VoteCount  int        `json:"vote_count"`
	Percentage float64    `json:"percentage"`
}

type YesNoResult struct {
	Yes     int `json:"yes"`
	No      int `json:"no"`
	Neutral int `json:"neutral"`
}

type RatingResult struct {
	Average     float64 `json:"average"`
	RatingCount int     `json:"rating_count"`
}

type NPSResult struct {
	Promoters  int `json:"promoters"`
	Passives   int `json:"passives"`
	Detractors int `json:"detractors"`
	Score      int `json:"score"`
}

type RankedOptionResult struct {
	Option PollOption `json:"option"`
	Points int        `json:"points"`
}

type TextEntry struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type PollResults struct {
	PollID uuid.UUID `json:"poll_id"`
	Type   PollType  `json:"type"`

	// TotalVotes counts distinct voters for multi-row types and raw rows for
	// single-row types.
	TotalVotes int `json:"total_votes"`

	Options []OptionResult       `json:"options,omitempty"`
	YesNo   *YesNoResult         `json:"yes_no,omitempty"`
	Rating  *RatingResult        `json:"rating,omitempty"`
	NPS     *NPSResult           `json:"nps,omitempty"`
	Ranked  []RankedOptionResult `json:"ranked,omitempty"`
	Entries []TextEntry          `json:"entries,omitempty"`
}
