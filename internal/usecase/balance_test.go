package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	testhelpers "github.com/gearmart/checkout/internal/test"
)

func TestBalanceSnapshotCachesWithinTTL(t *testing.T) {
	calls := 0
	stub := &testhelpers.LedgerClientStub{
		BalanceFn: func(context.Context, int64) (*model.CoinBalance, error) {
			calls++
			return &model.CoinBalance{Balance: 500}, nil
		},
	}
	uc := NewBalanceUseCase(stub, time.Minute)
	base := time.Now()
	uc.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		snapshot, err := uc.Snapshot(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snapshot.Balance != 500 {
			t.Fatalf("expected balance 500, got %d", snapshot.Balance)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single ledger call, got %d", calls)
	}

	uc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := uc.Snapshot(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected re-fetch after TTL, got %d calls", calls)
	}
}

func TestBalanceInvalidateForcesRefetch(t *testing.T) {
	calls := 0
	stub := &testhelpers.LedgerClientStub{
		BalanceFn: func(context.Context, int64) (*model.CoinBalance, error) {
			calls++
			return &model.CoinBalance{Balance: int64(calls * 100)}, nil
		},
	}
	uc := NewBalanceUseCase(stub, time.Hour)

	if _, err := uc.Snapshot(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Invalidate(1)

	snapshot, err := uc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected re-fetch after invalidate, got %d calls", calls)
	}
	if snapshot.Balance != 200 {
		t.Fatalf("expected fresh balance 200, got %d", snapshot.Balance)
	}
}

func TestBalanceUnknownUserHoldsZeroCoins(t *testing.T) {
	stub := &testhelpers.LedgerClientStub{
		BalanceFn: func(context.Context, int64) (*model.CoinBalance, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	uc := NewBalanceUseCase(stub, time.Minute)

	snapshot, err := uc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Balance != 0 || snapshot.TotalEarned != 0 {
		t.Fatalf("expected zero balance, got %+v", snapshot)
	}
}

func TestBalanceFetchFailureSurfaced(t *testing.T) {
	stub := &testhelpers.LedgerClientStub{
		BalanceFn: func(context.Context, int64) (*model.CoinBalance, error) {
			return nil, errors.New("ledger down")
		},
	}
	uc := NewBalanceUseCase(stub, time.Minute)

	if _, err := uc.Snapshot(context.Background(), 1); err == nil {
		t.Fatal("expected error when ledger is down")
	}
}
