package handlers

import (
	"context"

	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/settlement"
)

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error)
	UpdateCartQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveCartLine(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	PriceCart(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error)
}

// BalanceFacade provides coin balance snapshots.
type BalanceFacade interface {
	Balance(ctx context.Context, userID int64) (*model.CoinBalance, error)
}

// StreakFacade exposes the daily bonus state machine.
type StreakFacade interface {
	StreakState(ctx context.Context, userID int64) (*model.StreakState, error)
	ClaimDailyBonus(ctx context.Context, userID int64) (*model.ClaimResult, error)
}

// SettlementFacade finalizes a priced cart into an intake handoff.
type SettlementFacade interface {
	Settle(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error)
}

// CheckoutFacade aggregates the full set of operations used across handlers.
type CheckoutFacade interface {
	CartFacade
	BalanceFacade
	StreakFacade
	SettlementFacade
}
