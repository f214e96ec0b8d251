package test

import (
	"context"

	"github.com/gearmart/checkout/internal/domain/model"
)

// LedgerClientStub provides controllable ledger service behaviour for tests.
type LedgerClientStub struct {
	BalanceFn     func(context.Context, int64) (*model.CoinBalance, error)
	EligibilityFn func(context.Context, int64) (*model.StreakState, error)
	ClaimFn       func(context.Context, int64) (*model.ClaimResult, error)
}

// Balance delegates to the provided function or returns an empty snapshot.
func (s *LedgerClientStub) Balance(ctx context.Context, userID int64) (*model.CoinBalance, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.CoinBalance{}, nil
}

// Eligibility delegates to the provided function or returns a neutral state.
func (s *LedgerClientStub) Eligibility(ctx context.Context, userID int64) (*model.StreakState, error) {
	if s.EligibilityFn != nil {
		return s.EligibilityFn(ctx, userID)
	}
	return &model.StreakState{CurrentStreak: 1}, nil
}

// Claim delegates to the provided function or reports a first-day bonus.
func (s *LedgerClientStub) Claim(ctx context.Context, userID int64) (*model.ClaimResult, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, userID)
	}
	return &model.ClaimResult{NewStreak: 1, BonusAmount: 10}, nil
}
