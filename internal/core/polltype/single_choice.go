package polltype

import (
	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type singleChoice struct{}

func (singleChoice) Code() domain.PollType { return domain.TypeSingleChoice }

func (singleChoice) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	if ballot.OptionID == nil {
		return nil, domain.Invalid(domain.CodeMissingOption, "option_id", "an option is required")
	}
	if !poll.HasOption(*ballot.OptionID) {
		return nil, domain.Invalid(domain.CodeInvalidOption, "option_id", "option does not belong to this poll")
	}

	return []domain.Vote{{OptionID: ballot.OptionID}}, nil
}

func (singleChoice) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	total := len(votes)
	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeSingleChoice,
		TotalVotes: total,
		Options:    countByOption(poll, votes, total),
	}
}

// countByOption tallies rows per option in the poll's option order. total is
// the percentage denominator: raw rows for single_choice, distinct voters for
// multiple_choice.
func countByOption(poll *domain.Poll, votes []domain.Vote, total int) []domain.OptionResult {
	counts := make(map[uuid.UUID]int, len(poll.Options))
	for _, v := range votes {
		if v.OptionID == nil {
			continue
		}
		counts[*v.OptionID]++
	}

	results := make([]domain.OptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		count := counts[opt.ID]
		results = append(results, domain.OptionResult{
			Option:     opt,
			VoteCount:  count,
			Percentage: percentage(count, total),
		})
	}
	return results
}
