package polltype

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type multipleChoice struct{}

func (multipleChoice) Code() domain.PollType { return domain.TypeMultipleChoice }

func (multipleChoice) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	if len(ballot.OptionIDs) == 0 {
		return nil, domain.Invalid(domain.CodeMissingOption, "option_ids", "at least one option is required")
	}

	if cfg, ok := poll.Config.(domain.MultipleChoiceConfig); ok && cfg.MaxSelections > 0 {
		if len(ballot.OptionIDs) > cfg.MaxSelections {
			return nil, domain.Invalid(domain.CodeTooManySelections, "option_ids",
				fmt.Sprintf("at most %d options may be selected", cfg.MaxSelections))
		}
	}

	seen := make(map[uuid.UUID]bool, len(ballot.OptionIDs))
	rows := make([]domain.Vote, 0, len(ballot.OptionIDs))
	for _, optionID := range ballot.OptionIDs {
		if !poll.HasOption(optionID) {
			return nil, domain.Invalid(domain.CodeInvalidOption, "option_ids", "option does not belong to this poll")
		}
		if seen[optionID] {
			return nil, domain.Invalid(domain.CodeInvalidOption, "option_ids", "option selected more than once")
		}
		seen[optionID] = true

		id := optionID
		rows = append(rows, domain.Vote{OptionID: &id})
	}
	return rows, nil
}

func (multipleChoice) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	// One voter contributes a row per selection, so totals and percentages
	// are relative to distinct voters, not rows.
	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeMultipleChoice,
		TotalVotes: voterCount,
		Options:    countByOption(poll, votes, voterCount),
	}
}
