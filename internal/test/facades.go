package test

import (
	"context"

	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/settlement"
)

// CheckoutFacadeStub implements the handler facades with overridable hooks.
type CheckoutFacadeStub struct {
	AddCartLineFn        func(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error)
	UpdateCartQuantityFn func(ctx context.Context, userID, productID int64, quantity int) error
	RemoveCartLineFn     func(ctx context.Context, userID, productID int64) error
	ClearCartFn          func(ctx context.Context, userID int64) error
	PriceCartFn          func(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error)
	BalanceFn            func(ctx context.Context, userID int64) (*model.CoinBalance, error)
	StreakStateFn        func(ctx context.Context, userID int64) (*model.StreakState, error)
	ClaimDailyBonusFn    func(ctx context.Context, userID int64) (*model.ClaimResult, error)
	SettleFn             func(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error)
}

func (s CheckoutFacadeStub) AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	if s.AddCartLineFn != nil {
		return s.AddCartLineFn(ctx, userID, line)
	}
	return &line, nil
}

func (s CheckoutFacadeStub) UpdateCartQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if s.UpdateCartQuantityFn != nil {
		return s.UpdateCartQuantityFn(ctx, userID, productID, quantity)
	}
	return nil
}

func (s CheckoutFacadeStub) RemoveCartLine(ctx context.Context, userID, productID int64) error {
	if s.RemoveCartLineFn != nil {
		return s.RemoveCartLineFn(ctx, userID, productID)
	}
	return nil
}

func (s CheckoutFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, userID)
	}
	return nil
}

func (s CheckoutFacadeStub) PriceCart(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error) {
	if s.PriceCartFn != nil {
		return s.PriceCartFn(ctx, userID, redeem)
	}
	return &model.CartTotals{}, nil
}

func (s CheckoutFacadeStub) Balance(ctx context.Context, userID int64) (*model.CoinBalance, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.CoinBalance{}, nil
}

func (s CheckoutFacadeStub) StreakState(ctx context.Context, userID int64) (*model.StreakState, error) {
	if s.StreakStateFn != nil {
		return s.StreakStateFn(ctx, userID)
	}
	return &model.StreakState{}, nil
}

func (s CheckoutFacadeStub) ClaimDailyBonus(ctx context.Context, userID int64) (*model.ClaimResult, error) {
	if s.ClaimDailyBonusFn != nil {
		return s.ClaimDailyBonusFn(ctx, userID)
	}
	return &model.ClaimResult{}, nil
}

func (s CheckoutFacadeStub) Settle(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, userID, redeem, destination)
	}
	return &settlement.Message{}, nil
}
