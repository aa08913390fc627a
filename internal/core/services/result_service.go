package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/polltype"
	"github.com/castvox/castvox/internal/core/ports"
)

type resultService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewResultService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.ResultService {
	return &resultService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

// Results recomputes the poll's type-specific aggregate view from raw vote
// rows on every read. Nothing is cached.
func (s *resultService) Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.VotesByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	voterCount, err := s.voteRepo.VoterCount(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	results := polltype.For(poll.Type).Aggregate(poll, votes, voterCount)
	return &results, nil
}
