package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gearmart/checkout/internal/adapter/ledger"
)

// CheckoutFacade exposes the subset of application functionality required by the worker.
type CheckoutFacade interface {
	StreakUsersDue(limit int) []int64
	RefreshEligibility(ctx context.Context, userID int64) error
}

// EligibilityRefresher polls the ledger for users whose daily bonus claim
// window may have reopened and refreshes their cached eligibility.
type EligibilityRefresher struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEligibilityRefresher constructs the refresher worker pool.
func NewEligibilityRefresher(facade CheckoutFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *EligibilityRefresher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &EligibilityRefresher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan int64, batchSize*workers),
	}
}

// Start launches background refreshing.
func (r *EligibilityRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *EligibilityRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *EligibilityRefresher) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *EligibilityRefresher) fetchAndDispatch(ctx context.Context) {
	for _, userID := range r.facade.StreakUsersDue(r.batchSize) {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- userID:
		}
	}
}

func (r *EligibilityRefresher) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-r.jobs:
			if !ok {
				return
			}
			r.refresh(ctx, userID)
		}
	}
}

func (r *EligibilityRefresher) refresh(ctx context.Context, userID int64) {
	if err := r.facade.RefreshEligibility(ctx, userID); err != nil {
		switch e := err.(type) {
		case ledger.TooManyRequestsError:
			r.logger.Warn("ledger rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			r.logger.Error("eligibility refresh failed", slog.Int64("user", userID), slog.String("error", err.Error()))
		}
	}
}
