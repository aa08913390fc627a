package polltype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/castvox/castvox/internal/core/domain"
)

// maxTextEntries caps how many raw answers a results read returns; the total
// still reflects every stored row.
const maxTextEntries = 50

type openText struct{}

func (openText) Code() domain.PollType { return domain.TypeOpenText }

func (openText) Validate(poll *domain.Poll, ballot domain.Ballot) ([]domain.Vote, error) {
	text := strings.TrimSpace(ballot.Value)
	if text == "" {
		return nil, domain.Invalid(domain.CodeMissingText, "value", "an answer is required")
	}

	maxLength := domain.DefaultMaxTextLength
	if cfg, ok := poll.Config.(domain.OpenTextConfig); ok && cfg.MaxLength > 0 {
		maxLength = cfg.MaxLength
	}
	if len(text) > maxLength {
		return nil, domain.Invalid(domain.CodeTextTooLong, "value",
			fmt.Sprintf("answer must be at most %d characters", maxLength))
	}

	return []domain.Vote{{Value: &text}}, nil
}

func (openText) Aggregate(poll *domain.Poll, votes []domain.Vote, voterCount int) domain.PollResults {
	sorted := make([]domain.Vote, 0, len(votes))
	for _, v := range votes {
		if v.Value != nil {
			sorted = append(sorted, v)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	limit := len(sorted)
	if limit > maxTextEntries {
		limit = maxTextEntries
	}
	entries := make([]domain.TextEntry, 0, limit)
	for _, v := range sorted[:limit] {
		entries = append(entries, domain.TextEntry{Value: *v.Value, CreatedAt: v.CreatedAt})
	}

	return domain.PollResults{
		PollID:     poll.ID,
		Type:       domain.TypeOpenText,
		TotalVotes: len(votes),
		Entries:    entries,
	}
}
