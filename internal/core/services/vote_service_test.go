package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

func intPtr(v int) *int { return &v }

func TestSubmitRejectsUnknownPoll(t *testing.T) {
	svc := NewVoteService(newFakePollRepo(), newFakeVoteRepo(), unlimitedPlans())

	err := svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID:           uuid.New(),
		VoterFingerprint: "fp-1",
	})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestSubmitRejectsByEffectiveStatus(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	scheduled := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	scheduled.Status = domain.StatusScheduled
	scheduled.ScheduledAt = &future

	ended := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	ended.ClosedAt = &past

	draft := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	draft.Status = domain.StatusDraft

	svc := NewVoteService(newFakePollRepo(scheduled, ended, draft), newFakeVoteRepo(), unlimitedPlans())

	err := svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: scheduled.ID, VoterFingerprint: "fp-1", OptionID: &scheduled.Options[0].ID,
	})
	assert.ErrorIs(t, err, domain.ErrPollNotOpen)

	err = svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: ended.ID, VoterFingerprint: "fp-1", OptionID: &ended.Options[0].ID,
	})
	assert.ErrorIs(t, err, domain.ErrPollClosed)

	err = svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: draft.ID, VoterFingerprint: "fp-1", OptionID: &draft.Options[0].ID,
	})
	assert.ErrorIs(t, err, domain.ErrPollClosed)
}

func TestSubmitRequiresFingerprint(t *testing.T) {
	poll := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	svc := NewVoteService(newFakePollRepo(poll), newFakeVoteRepo(), unlimitedPlans())

	err := svc.Submit(context.Background(), ports.SubmitVoteInput{PollID: poll.ID})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.CodeInvalidFingerprint, verr.Code)
}

func TestSubmitQuotaBoundary(t *testing.T) {
	poll := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	voteRepo := newFakeVoteRepo()
	plans := &fakePlanCatalog{features: domain.PlanFeatures{MaxVotesPerPoll: 50}}
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, plans)

	// 49 existing voters: the 50th ballot is admitted.
	for i := 0; i < 49; i++ {
		err := svc.Submit(context.Background(), ports.SubmitVoteInput{
			PollID:           poll.ID,
			VoterFingerprint: fmt.Sprintf("fp-%d", i),
			OptionID:         &poll.Options[0].ID,
		})
		require.NoError(t, err)
	}
	err := svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: poll.ID, VoterFingerprint: "fp-50th", OptionID: &poll.Options[0].ID,
	})
	require.NoError(t, err)

	// The 51st is rejected, carrying the limit.
	err = svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: poll.ID, VoterFingerprint: "fp-51st", OptionID: &poll.Options[0].ID,
	})
	var limitErr *domain.VoteLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 50, limitErr.Limit)
}

func TestSubmitIsIdempotentPerVoter(t *testing.T) {
	poll := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, unlimitedPlans())

	input := ports.SubmitVoteInput{
		PollID: poll.ID, VoterFingerprint: "fp-1", OptionID: &poll.Options[0].ID,
	}
	require.NoError(t, svc.Submit(context.Background(), input))

	err := svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	votes, err := voteRepo.VotesByPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestSubmitConcurrentDuplicatesStoreOneBallot(t *testing.T) {
	poll := openPoll(domain.TypeSingleChoice, domain.SingleChoiceConfig{}, 2)
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, unlimitedPlans())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Submit(context.Background(), ports.SubmitVoteInput{
				PollID: poll.ID, VoterFingerprint: "fp-racer", OptionID: &poll.Options[0].ID,
			})
		}()
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
		}
	}
	assert.Equal(t, 1, accepted)

	votes, err := voteRepo.VotesByPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestSubmitMultipleChoiceFanOut(t *testing.T) {
	poll := openPoll(domain.TypeMultipleChoice, domain.MultipleChoiceConfig{}, 3)
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, unlimitedPlans())

	err := svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID:           poll.ID,
		VoterFingerprint: "fp-1",
		OptionIDs:        []uuid.UUID{poll.Options[0].ID, poll.Options[1].ID, poll.Options[2].ID},
	})
	require.NoError(t, err)

	votes, err := voteRepo.VotesByPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 3)
	for _, v := range votes {
		assert.Equal(t, "fp-1", v.VoterFingerprint)
	}

	voters, err := voteRepo.VoterCount(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, voters, "one ballot spends one unit of quota")
}

func TestSubmitSurfacesValidationErrors(t *testing.T) {
	poll := openPoll(domain.TypeRatingScale, domain.RatingConfig{MinValue: 1, MaxValue: 5}, 0)
	svc := NewVoteService(newFakePollRepo(poll), newFakeVoteRepo(), unlimitedPlans())

	err := svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID: poll.ID, VoterFingerprint: "fp-1", Rating: intPtr(9),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.CodeInvalidRatingRange, verr.Code)
}

func TestStatusReturnsPriorAnswer(t *testing.T) {
	poll := openPoll(domain.TypeRanked, domain.RankedConfig{PointSystem: []int{3, 2, 1}}, 3)
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, unlimitedPlans())

	status, err := svc.Status(context.Background(), poll.ID, "fp-1")
	require.NoError(t, err)
	assert.False(t, status.HasVoted)

	err = svc.Submit(context.Background(), ports.SubmitVoteInput{
		PollID:           poll.ID,
		VoterFingerprint: "fp-1",
		Rankings: map[int]uuid.UUID{
			1: poll.Options[2].ID,
			2: poll.Options[0].ID,
		},
	})
	require.NoError(t, err)

	status, err = svc.Status(context.Background(), poll.ID, "fp-1")
	require.NoError(t, err)
	assert.True(t, status.HasVoted)
	assert.Equal(t, map[int]uuid.UUID{
		1: poll.Options[2].ID,
		2: poll.Options[0].ID,
	}, status.Rankings)
}

func TestResetAllowsVotingAgain(t *testing.T) {
	poll := openPoll(domain.TypeYesNo, domain.YesNoConfig{}, 0)
	voteRepo := newFakeVoteRepo()
	svc := NewVoteService(newFakePollRepo(poll), voteRepo, unlimitedPlans())

	err := svc.Reset(context.Background(), poll.ID, "fp-1")
	assert.ErrorIs(t, err, domain.ErrDidNotVote)

	input := ports.SubmitVoteInput{PollID: poll.ID, VoterFingerprint: "fp-1", Value: "yes"}
	require.NoError(t, svc.Submit(context.Background(), input))
	require.NoError(t, svc.Reset(context.Background(), poll.ID, "fp-1"))

	votes, err := voteRepo.VotesByPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)

	input.Value = "no"
	require.NoError(t, svc.Submit(context.Background(), input))

	status, err := svc.Status(context.Background(), poll.ID, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, "no", status.Value)
}
