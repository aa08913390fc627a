package polltype

import (
	"sort"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type ranked struct{}

func (ranked) Code() domain.PollType { return domain.TypeRanked }

func (ranked) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	if len(ballot.Rankings) == 0 {
		return nil, domain.Invalid(domain.CodeMissingOption, "rankings", "at least one ranking is required")
	}

	ranks := make([]int, 0, len(ballot.Rankings))
	for rank := range ballot.Rankings {
		if rank < 1 {
			return nil, domain.Invalid(domain.CodeInvalidRank, "rankings", "ranks start at 1")
		}
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)

	// Partial rankings are fine; an option in more than one rank is not.
	seen := make(map[uuid.UUID]bool, len(ranks))
	rows := make([]domain.Vote, 0, len(ranks))
	for _, rank := range ranks {
		optionID := ballot.Rankings[rank]
		if !poll.HasOption(optionID) {
			return nil, domain.Invalid(domain.CodeInvalidOption, "rankings", "option does not belong to this poll")
		}
		if seen[optionID] {
			return nil, domain.Invalid(domain.CodeDuplicateRankOption, "rankings", "option appears in more than one rank")
		}
		seen[optionID] = true

		id := optionID
		r := rank
		rows = append(rows, domain.Vote{OptionID: &id, Rank: &r})
	}
	return rows, nil
}

func (ranked) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	points := make(map[uuid.UUID]int, len(poll.Options))
	for _, v := range votes {
		if v.OptionID == nil || v.Rank == nil {
			continue
		}
		points[*v.OptionID] += pointsForRank(poll, *v.Rank)
	}

	results := make([]domain.RankedOptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		results = append(results, domain.RankedOptionResult{
			Option: opt,
			Points: points[opt.ID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Points > results[j].Points
	})

	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeRanked,
		TotalVotes: voterCount,
		Ranked:     results,
	}
}

// pointsForRank resolves a rank position into points via the poll's point
// system. Ranks beyond the configured array are worth nothing.
func pointsForRank(poll *domain.Poll, rank int) int {
	system := domain.DefaultPointSystem
	if cfg, ok := poll.Config.(domain.RankedConfig); ok && len(cfg.PointSystem) > 0 {
		system = cfg.PointSystem
	}
	if rank < 1 || rank > len(system) {
		return 0
	}
	return system[rank-1]
}
