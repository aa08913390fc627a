package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type VoteRepository interface {
	// SaveBallot persists one voter's marker row plus the ballot's vote rows
	// atomically. A duplicate marker surfaces as domain.ErrAlreadyVoted.
	SaveBallot(ctx context.Context, pollID uuid.UUID, voterFingerprint string, rows []domain.Vote) error
	VotesByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Vote, error)
	VotesByVoter(ctx context.Context, pollID uuid.UUID, voterFingerprint string) ([]domain.Vote, error)
	HasVoted(ctx context.Context, pollID uuid.UUID, voterFingerprint string) (bool, error)
	// VoterCount counts distinct voters (marker rows) for a poll.
	VoterCount(ctx context.Context, pollID uuid.UUID) (int, error)
	DeleteBallot(ctx context.Context, pollID uuid.UUID, voterFingerprint string) error
}

type SubmitVoteInput struct {
	PollID           uuid.UUID
	VoterFingerprint string
	OptionID         *uuid.UUID
	OptionIDs        []uuid.UUID
	Value            string
	Rating           *int
	Rankings         map[int]uuid.UUID
}

type VoteService interface {
	Submit(ctx context.Context, input SubmitVoteInput) error
	Status(ctx context.Context, pollID uuid.UUID, voterFingerprint string) (*domain.VoterBallot, error)
	Reset(ctx context.Context, pollID uuid.UUID, voterFingerprint string) error
}

type ResultService interface {
	Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error)
}
