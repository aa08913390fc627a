package polltype

import (
	"math"

	"github.com/castvox/castvox/internal/core/domain"
)

// NPS bucket bounds on the fixed 0..10 scale.
const (
	npsMin           = 0
	npsMax           = 10
	npsDetractorMax  = 6
	npsPromoterStart = 9
)

type nps struct{}

func (nps) Code() domain.PollType { return domain.TypeNPS }

func (nps) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	if ballot.Rating == nil {
		return nil, domain.Invalid(domain.CodeInvalidRating, "rating", "a rating is required")
	}
	if *ballot.Rating < npsMin || *ballot.Rating > npsMax {
		return nil, domain.Invalid(domain.CodeInvalidRatingRange, "rating", "rating must be between 0 and 10")
	}

	rating := *ballot.Rating
	return []domain.Vote{{Rating: &rating}}, nil
}

func (nps) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	var result domain.NPSResult
	for _, v := range votes {
		if v.Rating == nil {
			continue
		}
		switch {
		case *v.Rating <= npsDetractorMax:
			result.Detractors++
		case *v.Rating >= npsPromoterStart:
			result.Promoters++
		default:
			result.Passives++
		}
	}

	total := result.Promoters + result.Passives + result.Detractors
	if total > 0 {
		result.Score = int(math.Round(float64(result.Promoters-result.Detractors) / float64(total) * 100))
	}

	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeNPS,
		TotalVotes: total,
		NPS:        &result,
	}
}
