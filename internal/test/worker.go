package test

import (
	"context"
	"sync"
)

// WorkerFacadeStub feeds the eligibility refresher with scripted batches.
type WorkerFacadeStub struct {
	sync.Mutex
	DueBatches [][]int64
	RefreshFn  func(ctx context.Context, userID int64) error
	Refreshed  []int64
}

func (s *WorkerFacadeStub) StreakUsersDue(limit int) []int64 {
	s.Lock()
	defer s.Unlock()
	if len(s.DueBatches) == 0 {
		return nil
	}
	batch := s.DueBatches[0]
	s.DueBatches = s.DueBatches[1:]
	if limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	return batch
}

func (s *WorkerFacadeStub) RefreshEligibility(ctx context.Context, userID int64) error {
	if s.RefreshFn != nil {
		if err := s.RefreshFn(ctx, userID); err != nil {
			return err
		}
	}
	s.Lock()
	s.Refreshed = append(s.Refreshed, userID)
	s.Unlock()
	return nil
}
