// Package plancatalog resolves subscription plan codes into feature sets.
// Billing owns plan state; this adapter is a read-only lookup with a safe
// fallback, so an unknown or missing plan code degrades to the free tier
// instead of failing a vote.
package plancatalog

import (
	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

type staticCatalog struct {
	plans map[string]domain.PlanFeatures
}

func NewStatic() ports.PlanCatalog {
	return &staticCatalog{
		plans: map[string]domain.PlanFeatures{
			PlanFree: {
				MaxActivePolls:  3,
				MaxVotesPerPoll: 50,
				PollTypes: []domain.PollType{
					domain.TypeSingleChoice,
					domain.TypeMultipleChoice,
					domain.TypeYesNo,
				},
			},
			PlanPro: {
				MaxActivePolls:  25,
				MaxVotesPerPoll: 1000,
				PollTypes: []domain.PollType{
					domain.TypeSingleChoice,
					domain.TypeMultipleChoice,
					domain.TypeYesNo,
					domain.TypeRatingScale,
					domain.TypeNPS,
					domain.TypeOpenText,
				},
			},
			PlanBusiness: {
				MaxActivePolls:  -1,
				MaxVotesPerPoll: domain.UnlimitedVotes,
				PollTypes: []domain.PollType{
					domain.TypeSingleChoice,
					domain.TypeMultipleChoice,
					domain.TypeYesNo,
					domain.TypeRatingScale,
					domain.TypeNPS,
					domain.TypeRanked,
					domain.TypeOpenText,
				},
			},
		},
	}
}

func (c *staticCatalog) Features(plan string) domain.PlanFeatures {
	if features, ok := c.plans[plan]; ok {
		return features
	}
	return c.plans[PlanFree]
}
