package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer values for yes_no polls.
const (
	AnswerYes     = "yes"
	AnswerNo      = "no"
	AnswerNeutral = "neutral"
)

// Vote is one stored vote row. Which of the nullable fields is set depends on
// the poll type: option-bearing types set OptionID (ranked also sets Rank),
// yes_no and open_text set Value, rating_scale and nps set Rating. A voter
// owns multiple rows only for multiple_choice and ranked polls.
type Vote struct {
	ID               uuid.UUID  `json:"id"`
	PollID           uuid.UUID  `json:"poll_id"`
	OptionID         *uuid.UUID `json:"option_id,omitempty"`
	VoterFingerprint string     `json:"-"`
	Value            *string    `json:"value,omitempty"`
	Rating           *int       `json:"rating,omitempty"`
	Rank             *int       `json:"rank,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Ballot is the submitted input for one voter on one poll, before it is
// validated and shaped into vote rows. Which fields are expected depends on
// the poll type.
type Ballot struct {
	VoterFingerprint string
	OptionID         *uuid.UUID
	OptionIDs        []uuid.UUID
	Value            string
	Rating           *int
	Rankings         map[int]uuid.UUID
}

// VoterBallot is the read-side view of a voter's own prior answer, used by
// vote-status queries so the UI can redisplay it without re-submitting.
type VoterBallot struct {
	HasVoted  bool              `json:"has_voted"`
	OptionIDs []uuid.UUID       `json:"option_ids,omitempty"`
	Value     string            `json:"value,omitempty"`
	Rating    *int              `json:"rating,omitempty"`
	Rankings  map[int]uuid.UUID `json:"rankings,omitempty"`
}
