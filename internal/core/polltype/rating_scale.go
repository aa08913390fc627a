package polltype

import (
	"fmt"

	"github.com/castvox/castvox/internal/core/domain"
)

type ratingScale struct{}

func (ratingScale) Code() domain.PollType { return domain.TypeRatingScale }

func (ratingScale) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	if ballot.Rating == nil {
		return nil, domain.Invalid(domain.CodeInvalidRating, "rating", "a rating is required")
	}

	min, max := domain.DefaultRatingMin, domain.DefaultRatingMax
	if cfg, ok := poll.Config.(domain.RatingConfig); ok {
		min, max = cfg.MinValue, cfg.MaxValue
	}
	if *ballot.Rating < min || *ballot.Rating > max {
		return nil, domain.Invalid(domain.CodeInvalidRatingRange, "rating",
			fmt.Sprintf("rating must be between %d and %d", min, max))
	}

	rating := *ballot.Rating
	return []domain.Vote{{Rating: &rating}}, nil
}

func (ratingScale) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	result := averageRating(votes)
	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeRatingScale,
		TotalVotes: result.RatingCount,
		Rating:     &result,
	}
}

func averageRating(votes []domain.Vote) domain.RatingResult {
	var sum, count int
	for _, v := range votes {
		if v.Rating == nil {
			continue
		}
		sum += *v.Rating
		count++
	}

	var avg float64
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	return domain.RatingResult{Average: avg, RatingCount: count}
}
