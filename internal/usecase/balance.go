package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gearmart/checkout/internal/adapter/ledger"
	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
)

// BalanceUseCase serves session-cached coin balance snapshots. The ledger
// service owns the balance; cached values are advisory and must be dropped
// after any committing action via Invalidate.
type BalanceUseCase struct {
	client ledger.Client
	ttl    time.Duration

	mu    sync.Mutex
	cache map[int64]cachedBalance
	now   func() time.Time
}

type cachedBalance struct {
	snapshot  model.CoinBalance
	fetchedAt time.Time
}

// NewBalanceUseCase constructs BalanceUseCase with the given cache TTL.
func NewBalanceUseCase(client ledger.Client, ttl time.Duration) *BalanceUseCase {
	return &BalanceUseCase{
		client: client,
		ttl:    ttl,
		cache:  make(map[int64]cachedBalance),
		now:    time.Now,
	}
}

// Snapshot returns the cached balance when fresh, otherwise re-fetches.
// A user unknown to the ledger holds zero coins.
func (u *BalanceUseCase) Snapshot(ctx context.Context, userID int64) (*model.CoinBalance, error) {
	u.mu.Lock()
	if entry, ok := u.cache[userID]; ok && u.now().Sub(entry.fetchedAt) < u.ttl {
		snapshot := entry.snapshot
		u.mu.Unlock()
		return &snapshot, nil
	}
	u.mu.Unlock()

	snapshot, err := u.client.Balance(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			snapshot = &model.CoinBalance{}
		} else {
			return nil, err
		}
	}

	u.mu.Lock()
	u.cache[userID] = cachedBalance{snapshot: *snapshot, fetchedAt: u.now()}
	u.mu.Unlock()
	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next read hits the ledger.
func (u *BalanceUseCase) Invalidate(userID int64) {
	u.mu.Lock()
	delete(u.cache, userID)
	u.mu.Unlock()
}
