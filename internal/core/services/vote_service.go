package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/polltype"
	"github.com/castvox/castvox/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	plans    ports.PlanCatalog
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, plans ports.PlanCatalog) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		plans:    plans,
	}
}

// Submit runs the admission checks in order (poll open, plan quota, duplicate
// voter), then validates the ballot for the poll's type and persists its rows.
//
// The duplicate check here is an early exit only; the storage constraint on
// the voter marker is what actually holds the one-ballot-per-voter invariant
// under concurrent submission. The quota check is advisory: two racing
// ballots can both observe count = max-1 and both land, a bounded overshoot
// accepted instead of serializing every write to a poll.
func (s *voteService) Submit(ctx context.Context, input ports.SubmitVoteInput) error {
	if input.VoterFingerprint == "" {
		return domain.Invalid(domain.CodeInvalidFingerprint, "fingerprint", "a voter fingerprint is required")
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return err
	}

	switch poll.EffectiveStatus(time.Now()) {
	case domain.StatusOpen:
	case domain.StatusScheduled:
		return domain.ErrPollNotOpen
	default:
		return domain.ErrPollClosed
	}

	features := s.plans.Features(poll.CreatorPlan)
	if !features.UnlimitedVotesPerPoll() {
		count, err := s.voteRepo.VoterCount(ctx, poll.ID)
		if err != nil {
			return fmt.Errorf("failed to count voters: %w", err)
		}
		if count >= features.MaxVotesPerPoll {
			return &domain.VoteLimitError{Limit: features.MaxVotesPerPoll}
		}
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, poll.ID, input.VoterFingerprint)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if hasVoted {
		return domain.ErrAlreadyVoted
	}

	rows, err := polltype.For(poll.Type).Validate(poll, domain.Ballot{
		VoterFingerprint: input.VoterFingerprint,
		OptionID:         input.OptionID,
		OptionIDs:        input.OptionIDs,
		Value:            input.Value,
		Rating:           input.Rating,
		Rankings:         input.Rankings,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	for i := range rows {
		rows[i].ID = uuid.New()
		rows[i].PollID = poll.ID
		rows[i].VoterFingerprint = input.VoterFingerprint
		rows[i].CreatedAt = now
	}

	return s.voteRepo.SaveBallot(ctx, poll.ID, input.VoterFingerprint, rows)
}

// Status reports whether the fingerprint has voted on the poll and, if so,
// the prior answer so the UI can redisplay it without re-submitting.
func (s *voteService) Status(ctx context.Context, pollID uuid.UUID, voterFingerprint string) (*domain.VoterBallot, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.VotesByVoter(ctx, pollID, voterFingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to load voter ballot: %w", err)
	}
	if len(votes) == 0 {
		return &domain.VoterBallot{}, nil
	}

	ballot := &domain.VoterBallot{HasVoted: true}
	for _, v := range votes {
		switch {
		case v.Rank != nil && v.OptionID != nil:
			if ballot.Rankings == nil {
				ballot.Rankings = make(map[int]uuid.UUID)
			}
			ballot.Rankings[*v.Rank] = *v.OptionID
		case v.OptionID != nil:
			ballot.OptionIDs = append(ballot.OptionIDs, *v.OptionID)
		case v.Rating != nil:
			ballot.Rating = v.Rating
		case v.Value != nil:
			ballot.Value = *v.Value
		}
	}
	return ballot, nil
}

// Reset removes every vote row and the voter marker for the pair, so the
// fingerprint can vote again. Used by testing and demo flows.
func (s *voteService) Reset(ctx context.Context, pollID uuid.UUID, voterFingerprint string) error {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return err
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, pollID, voterFingerprint)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if !hasVoted {
		return domain.ErrDidNotVote
	}

	return s.voteRepo.DeleteBallot(ctx, pollID, voterFingerprint)
}
