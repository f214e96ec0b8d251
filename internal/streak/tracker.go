package streak

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gearmart/checkout/internal/adapter/ledger"
	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
)

// Tracker observes the daily streak bonus state machine owned by the ledger
// service. It never computes streak length or bonus amounts itself: it caches
// the latest eligibility snapshot per user, guards against double-submitted
// claims, and lets a newer refresh supersede an older in-flight one.
type Tracker struct {
	client ledger.Client
	logger *slog.Logger

	mu    sync.Mutex
	users map[int64]*userState
	now   func() time.Time
}

type userState struct {
	snapshot   *model.StreakState
	fetchedAt  time.Time
	generation uint64
	claiming   bool
}

// NewTracker constructs the streak tracker.
func NewTracker(client ledger.Client, logger *slog.Logger) *Tracker {
	return &Tracker{
		client: client,
		logger: logger,
		users:  make(map[int64]*userState),
		now:    time.Now,
	}
}

// State returns the latest eligibility snapshot for the user. The second
// return value is false when no snapshot has been fetched yet, which callers
// must treat as "unknown": claim disabled, no guessed eligibility.
func (t *Tracker) State(userID int64) (model.StreakState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.users[userID]
	if !ok || st.snapshot == nil {
		return model.StreakState{}, false
	}
	return *st.snapshot, true
}

// Refresh fetches a fresh eligibility snapshot. When several refreshes race,
// only the most recently started one may install its result: older responses
// are discarded so a stale fetch cannot clobber a newer snapshot.
func (t *Tracker) Refresh(ctx context.Context, userID int64) (*model.StreakState, error) {
	t.mu.Lock()
	st := t.ensure(userID)
	st.generation++
	gen := st.generation
	t.mu.Unlock()

	snapshot, err := t.client.Eligibility(ctx, userID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if st.generation != gen {
		// Superseded by a newer refresh; keep whatever it installed.
		if st.snapshot != nil {
			current := *st.snapshot
			return &current, nil
		}
		return nil, domainErrors.ErrEligibilityUnknown
	}
	st.snapshot = snapshot
	st.fetchedAt = t.now()
	return snapshot, nil
}

// Claim submits a daily bonus claim. At most one claim per user may be in
// flight; the ledger remains the final arbiter of one-claim-per-window.
// On success the cached snapshot is refreshed so the countdown restarts from
// the service's view, and on any failure it is left untouched.
func (t *Tracker) Claim(ctx context.Context, userID int64) (*model.ClaimResult, error) {
	t.mu.Lock()
	st := t.ensure(userID)
	if st.claiming {
		t.mu.Unlock()
		return nil, domainErrors.ErrClaimInFlight
	}
	st.claiming = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		st.claiming = false
		t.mu.Unlock()
	}()

	result, err := t.client.Claim(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := t.Refresh(ctx, userID); err != nil {
		t.logger.Warn("eligibility refresh after claim failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	return result, nil
}

// DueForRefresh returns up to limit tracked users whose countdown has elapsed
// since the snapshot was fetched and who are not already claimable.
func (t *Tracker) DueForRefresh(limit int) []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var due []int64
	for userID, st := range t.users {
		if limit > 0 && len(due) >= limit {
			break
		}
		if st.snapshot == nil || st.claiming {
			continue
		}
		if st.snapshot.CanClaim {
			continue
		}
		deadline := st.fetchedAt.Add(time.Duration(st.snapshot.SecondsUntilNextClaim) * time.Second)
		if !now.Before(deadline) {
			due = append(due, userID)
		}
	}
	return due
}

func (t *Tracker) ensure(userID int64) *userState {
	st, ok := t.users[userID]
	if !ok {
		st = &userState{}
		t.users[userID] = st
	}
	return st
}
