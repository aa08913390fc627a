package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

const pollsPerPage = 20

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

// GetPoll returns the poll with its status replaced by the derived effective
// status, so callers never see a stale stored status.
func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	poll.Status = poll.EffectiveStatus(time.Now())
	return poll, nil
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	polls, err := s.repo.List(ctx, pollsPerPage, (page-1)*pollsPerPage)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	visible := make([]*domain.Poll, 0, len(polls))
	for _, poll := range polls {
		if !poll.VisibleToPublic(now) {
			continue
		}
		poll.Status = poll.EffectiveStatus(now)
		visible = append(visible, poll)
	}
	return visible, nil
}
