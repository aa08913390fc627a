package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type PollRepository interface {
	// GetByID loads a poll with its options, decoded config and the
	// creator's plan code. Returns domain.ErrPollNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	// ListOverdue returns polls whose stored status still says scheduled or
	// open although their close time has passed.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Poll, error)
	MarkClosed(ctx context.Context, id uuid.UUID) error
}

type ListPollsInput struct {
	Page int
}

type PollService interface {
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
}

type LifecycleService interface {
	CloseEndedPolls(ctx context.Context) error
}
