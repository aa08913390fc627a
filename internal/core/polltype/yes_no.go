package polltype

import (
	"github.com/castvox/castvox/internal/core/domain"
)

type yesNo struct{}

func (yesNo) Code() domain.PollType { return domain.TypeYesNo }

func (yesNo) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	switch ballot.Value {
	case domain.AnswerYes, domain.AnswerNo:
	case domain.AnswerNeutral:
		cfg, _ := poll.Config.(domain.YesNoConfig)
		if !cfg.AllowNeutral {
			return nil, domain.Invalid(domain.CodeInvalidValue, "value", "neutral answers are not enabled for this poll")
		}
	default:
		return nil, domain.Invalid(domain.CodeInvalidValue, "value", `value must be "yes", "no" or "neutral"`)
	}

	value := ballot.Value
	return []domain.Vote{{Value: &value}}, nil
}

func (yesNo) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	var result domain.YesNoResult
	for _, v := range votes {
		if v.Value == nil {
			continue
		}
		switch *v.Value {
		case domain.AnswerYes:
			result.Yes++
		case domain.AnswerNo:
			result.No++
		case domain.AnswerNeutral:
			result.Neutral++
		}
	}

	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeYesNo,
		TotalVotes: result.Yes + result.No + result.Neutral,
		YesNo:      &result,
	}
}
