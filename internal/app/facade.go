package app

import (
	"context"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/pkg/auth"
	"github.com/gearmart/checkout/internal/settlement"
	"github.com/gearmart/checkout/internal/streak"
	"github.com/gearmart/checkout/internal/usecase"
)

// CheckoutFacade is the application surface shared by the HTTP layer and the
// background refresher.
type CheckoutFacade struct {
	checkout *usecase.CheckoutUseCase
	balances *usecase.BalanceUseCase
	streaks  *streak.Tracker
	handoff  *settlement.Handoff
	tokens   auth.Strategy
}

func NewCheckoutFacade(
	checkout *usecase.CheckoutUseCase,
	balances *usecase.BalanceUseCase,
	streaks *streak.Tracker,
	handoff *settlement.Handoff,
	tokens auth.Strategy,
) *CheckoutFacade {
	return &CheckoutFacade{
		checkout: checkout,
		balances: balances,
		streaks:  streaks,
		handoff:  handoff,
		tokens:   tokens,
	}
}

func (f *CheckoutFacade) ParseToken(token string) (int64, error) {
	return f.tokens.ParseToken(token)
}

func (f *CheckoutFacade) AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	return f.checkout.AddLine(ctx, userID, line)
}

func (f *CheckoutFacade) UpdateCartQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return f.checkout.UpdateQuantity(ctx, userID, productID, quantity)
}

func (f *CheckoutFacade) RemoveCartLine(ctx context.Context, userID, productID int64) error {
	return f.checkout.RemoveLine(ctx, userID, productID)
}

func (f *CheckoutFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.checkout.Clear(ctx, userID)
}

func (f *CheckoutFacade) PriceCart(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error) {
	return f.checkout.Price(ctx, userID, redeem)
}

func (f *CheckoutFacade) Balance(ctx context.Context, userID int64) (*model.CoinBalance, error) {
	return f.balances.Snapshot(ctx, userID)
}

// StreakState serves the cached eligibility snapshot, fetching one from the
// ledger when the user has never been observed.
func (f *CheckoutFacade) StreakState(ctx context.Context, userID int64) (*model.StreakState, error) {
	if state, ok := f.streaks.State(userID); ok {
		return &state, nil
	}
	return f.streaks.Refresh(ctx, userID)
}

// ClaimDailyBonus claims the bonus and drops the cached balance so the next
// pricing pass sees the credited coins.
func (f *CheckoutFacade) ClaimDailyBonus(ctx context.Context, userID int64) (*model.ClaimResult, error) {
	result, err := f.streaks.Claim(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.balances.Invalidate(userID)
	return result, nil
}

// Settle reprices the cart against a fresh balance and renders the
// order-intake message. The cart is left intact; clearing it is the
// storefront's decision once the handoff is confirmed.
func (f *CheckoutFacade) Settle(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error) {
	f.balances.Invalidate(userID)
	totals, err := f.checkout.Price(ctx, userID, redeem)
	if err != nil {
		return nil, err
	}
	if len(totals.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	msg := f.handoff.Build(totals, destination)
	return &msg, nil
}

func (f *CheckoutFacade) StreakUsersDue(limit int) []int64 {
	return f.streaks.DueForRefresh(limit)
}

func (f *CheckoutFacade) RefreshEligibility(ctx context.Context, userID int64) error {
	_, err := f.streaks.Refresh(ctx, userID)
	return err
}
