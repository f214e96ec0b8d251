package usecase

import (
	"context"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/domain/repository"
	"github.com/gearmart/checkout/internal/pricing"
)

// BalanceProvider supplies coin balance snapshots to the checkout flow.
type BalanceProvider interface {
	Snapshot(ctx context.Context, userID int64) (*model.CoinBalance, error)
}

// CheckoutUseCase glues the cart state, the product catalog, and the pure
// pricing fold into priced checkout views.
type CheckoutUseCase struct {
	carts    repository.CartRepository
	catalog  repository.CatalogRepository
	balances BalanceProvider
	shipping pricing.ShippingPolicy
	shared   bool
}

// NewCheckoutUseCase constructs CheckoutUseCase. sharedBalance selects the
// running-balance redemption variant instead of the stock per-line one.
func NewCheckoutUseCase(
	carts repository.CartRepository,
	catalog repository.CatalogRepository,
	balances BalanceProvider,
	shipping pricing.ShippingPolicy,
	sharedBalance bool,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:    carts,
		catalog:  catalog,
		balances: balances,
		shipping: shipping,
		shared:   sharedBalance,
	}
}

// AddLine puts a product into the cart, validating quantity and existence.
func (u *CheckoutUseCase) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	if line.Quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if _, err := u.catalog.GetProduct(ctx, line.ProductID); err != nil {
		return nil, err
	}
	return u.carts.AddLine(ctx, userID, line)
}

// UpdateQuantity sets a line's quantity; zero removes the line, which keeps
// line removal with the cart owner rather than with the pricing engine.
func (u *CheckoutUseCase) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if quantity == 0 {
		return u.carts.RemoveLine(ctx, userID, productID)
	}
	return u.carts.UpdateQuantity(ctx, userID, productID, quantity)
}

// RemoveLine deletes a single cart line.
func (u *CheckoutUseCase) RemoveLine(ctx context.Context, userID, productID int64) error {
	return u.carts.RemoveLine(ctx, userID, productID)
}

// Clear empties the whole cart.
func (u *CheckoutUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}

// Price computes the current priced checkout view. With redemption enabled a
// balance fetch failure is an error; with it disabled pricing proceeds with a
// zero balance since coins play no part.
func (u *CheckoutUseCase) Price(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error) {
	lines, err := u.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := u.catalog.ListProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	priced := make([]model.PricedLine, 0, len(lines))
	for _, line := range lines {
		// A vanished catalog record degrades to a zero-priced line instead of
		// blocking checkout.
		priced = append(priced, pricing.PriceLine(line, products[line.ProductID]))
	}

	var balance int64
	if redeem {
		snapshot, err := u.balances.Snapshot(ctx, userID)
		if err != nil {
			return nil, err
		}
		balance = snapshot.Balance
	}

	totals := pricing.Aggregate(priced, pricing.CoinSettings{
		Enabled:       redeem,
		Balance:       balance,
		SharedBalance: u.shared,
	}, u.shipping)
	return &totals, nil
}
