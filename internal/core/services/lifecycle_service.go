package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/ports"
)

type lifecycleService struct {
	pollRepo ports.PollRepository
}

func NewLifecycleService(pollRepo ports.PollRepository) ports.LifecycleService {
	return &lifecycleService{
		pollRepo: pollRepo,
	}
}

// CloseEndedPolls persists `closed` for polls whose close time has passed but
// whose stored status has not caught up. Reads derive the effective status
// anyway; this keeps the stored field from drifting indefinitely.
func (s *lifecycleService) CloseEndedPolls(ctx context.Context) error {
	polls, err := s.pollRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list overdue polls: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func(pID uuid.UUID) {
			defer wg.Done()
			if err := s.pollRepo.MarkClosed(ctx, pID); err != nil {
				errChan <- fmt.Errorf("failed to close poll %s: %w", pID, err)
			}
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
