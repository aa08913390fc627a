// Package polltype holds one variant per supported poll type. Each variant
// knows how to validate a submitted ballot into type-correct vote rows and
// how to aggregate raw rows into the type's result view. Adding a poll type
// means adding one variant and registering it, not editing a shared branch.
package polltype

import (
	"github.com/castvox/castvox/internal/core/domain"
)

type Handler interface {
	Code() domain.PollType

	// Validate checks the ballot against the poll's rules and returns the
	// vote rows to persist. Rows carry only the type-specific fields; the
	// caller stamps ids, poll id, fingerprint and timestamps.
	Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error)

	// Aggregate derives the read-side result view from raw vote rows.
	// voterCount is the distinct-voter count for the poll, which multi-row
	// types report as their vote total.
	Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults
}

var registry = map[domain.PollType]Handler{
	domain.TypeSingleChoice:   singleChoice{},
	domain.TypeMultipleChoice: multipleChoice{},
	domain.TypeYesNo:          yesNo{},
	domain.TypeRatingScale:    ratingScale{},
	domain.TypeNPS:            nps{},
	domain.TypeRanked:         ranked{},
	domain.TypeOpenText:       openText{},
}

// For returns the variant for a type code. Unknown codes fall back to
// single_choice semantics.
func For(code domain.PollType) Handler {
	if h, ok := registry[code]; ok {
		return h
	}
	return singleChoice{}
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
