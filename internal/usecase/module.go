package usecase

import (
	"go.uber.org/fx"

	"github.com/gearmart/checkout/internal/adapter/ledger"
	"github.com/gearmart/checkout/internal/config"
	"github.com/gearmart/checkout/internal/domain/repository"
	"github.com/gearmart/checkout/internal/pricing"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newBalanceUseCase,
	newCheckoutUseCase,
	func(u *BalanceUseCase) BalanceProvider { return u },
)

type balanceParams struct {
	fx.In

	Client ledger.Client
	Config *config.Config
}

func newBalanceUseCase(p balanceParams) *BalanceUseCase {
	return NewBalanceUseCase(p.Client, p.Config.BalanceCacheTTL)
}

type checkoutParams struct {
	fx.In

	Carts    repository.CartRepository
	Catalog  repository.CatalogRepository
	Balances BalanceProvider
	Config   *config.Config
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	shipping := pricing.ShippingPolicy{
		FreeThreshold:     p.Config.FreeShippingThreshold,
		Fee:               p.Config.ShippingFee,
		InstallmentMonths: p.Config.InstallmentMonths,
	}
	return NewCheckoutUseCase(p.Carts, p.Catalog, p.Balances, shipping, p.Config.RedeemSharedBalance)
}
