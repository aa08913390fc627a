package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
)

type fakePollRepo struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
}

func newFakePollRepo(polls ...*domain.Poll) *fakePollRepo {
	repo := &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
	for _, p := range polls {
		repo.polls[p.ID] = p
	}
	return repo
}

func (r *fakePollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	copied := *poll
	return &copied, nil
}

func (r *fakePollRepo) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var polls []*domain.Poll
	for _, p := range r.polls {
		copied := *p
		polls = append(polls, &copied)
	}
	return polls, nil
}

func (r *fakePollRepo) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var polls []*domain.Poll
	for _, p := range r.polls {
		if p.Status == domain.StatusClosed || p.ClosedAt == nil || p.ClosedAt.After(now) {
			continue
		}
		copied := *p
		polls = append(polls, &copied)
	}
	return polls, nil
}

func (r *fakePollRepo) MarkClosed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.Status = domain.StatusClosed
	return nil
}

// fakeVoteRepo enforces the voter-marker uniqueness the way the postgres
// primary key does, so admission races behave like the real store.
type fakeVoteRepo struct {
	mu      sync.Mutex
	markers map[string]bool
	votes   []domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{markers: make(map[string]bool)}
}

func markerKey(pollID uuid.UUID, fp string) string {
	return fmt.Sprintf("%s/%s", pollID, fp)
}

func (r *fakeVoteRepo) SaveBallot(ctx context.Context, pollID uuid.UUID, fp string, rows []domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := markerKey(pollID, fp)
	if r.markers[key] {
		return domain.ErrAlreadyVoted
	}
	r.markers[key] = true
	r.votes = append(r.votes, rows...)
	return nil
}

func (r *fakeVoteRepo) VotesByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var votes []domain.Vote
	for _, v := range r.votes {
		if v.PollID == pollID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (r *fakeVoteRepo) VotesByVoter(ctx context.Context, pollID uuid.UUID, fp string) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var votes []domain.Vote
	for _, v := range r.votes {
		if v.PollID == pollID && v.VoterFingerprint == fp {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (r *fakeVoteRepo) HasVoted(ctx context.Context, pollID uuid.UUID, fp string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markers[markerKey(pollID, fp)], nil
}

func (r *fakeVoteRepo) VoterCount(ctx context.Context, pollID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	prefix := pollID.String() + "/"
	for key, present := range r.markers {
		if present && len(key) > len(prefix) && key[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (r *fakeVoteRepo) DeleteBallot(ctx context.Context, pollID uuid.UUID, fp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.markers, markerKey(pollID, fp))
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.PollID == pollID && v.VoterFingerprint == fp {
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return nil
}

type fakePlanCatalog struct {
	features domain.PlanFeatures
}

func (c *fakePlanCatalog) Features(plan string) domain.PlanFeatures {
	return c.features
}

func unlimitedPlans() *fakePlanCatalog {
	return &fakePlanCatalog{features: domain.PlanFeatures{MaxVotesPerPoll: domain.UnlimitedVotes}}
}

func openPoll(t domain.PollType, cfg domain.PollConfig, optionCount int) *domain.Poll {
	poll := &domain.Poll{
		ID:          uuid.New(),
		Title:       "test poll",
		Type:        t,
		Status:      domain.StatusOpen,
		Config:      cfg,
		CreatorPlan: "free",
	}
	for i := 0; i < optionCount; i++ {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:         uuid.New(),
			PollID:     poll.ID,
			Label:      fmt.Sprintf("Option %d", i+1),
			OrderIndex: i,
		})
	}
	return poll
}
