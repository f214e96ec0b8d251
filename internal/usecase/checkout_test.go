package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/pricing"
	testhelpers "github.com/gearmart/checkout/internal/test"
)

type balanceProviderStub struct {
	snapshot *model.CoinBalance
	err      error
	calls    int
}

func (s *balanceProviderStub) Snapshot(context.Context, int64) (*model.CoinBalance, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.snapshot != nil {
		return s.snapshot, nil
	}
	return &model.CoinBalance{}, nil
}

func testShipping() pricing.ShippingPolicy {
	return pricing.ShippingPolicy{FreeThreshold: 15000, Fee: 2500, InstallmentMonths: 12}
}

func testProduct(id int64, price int64) model.Product {
	return model.Product{
		ID:      id,
		Name:    "product",
		Pricing: model.PricingConfig{UnitPrice: price, CashbackPercent: 2, RedemptionCapPercent: 5},
	}
}

func TestAddLineValidation(t *testing.T) {
	uc := NewCheckoutUseCase(
		testhelpers.NewCartRepositoryStub(),
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		&balanceProviderStub{},
		testShipping(),
		false,
	)

	if _, err := uc.AddLine(context.Background(), 1, model.CartLine{ProductID: 1, Quantity: 0}); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := uc.AddLine(context.Background(), 1, model.CartLine{ProductID: 99, Quantity: 1}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	line, err := uc.AddLine(context.Background(), 1, model.CartLine{ProductID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	uc := NewCheckoutUseCase(
		carts,
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		&balanceProviderStub{},
		testShipping(),
		false,
	)

	if _, err := uc.AddLine(context.Background(), 1, model.CartLine{ProductID: 1, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.UpdateQuantity(context.Background(), 1, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(carts.Lines[1]) != 0 {
		t.Fatalf("expected line removed, got %v", carts.Lines[1])
	}

	if err := uc.UpdateQuantity(context.Background(), 1, 1, -1); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestPriceWithoutRedemptionSkipsBalance(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	carts.Lines[1] = []model.CartLine{{ProductID: 1, Quantity: 1}}
	balances := &balanceProviderStub{err: errors.New("ledger down")}
	uc := NewCheckoutUseCase(
		carts,
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		balances,
		testShipping(),
		false,
	)

	totals, err := uc.Price(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balances.calls != 0 {
		t.Fatalf("expected no balance fetch, got %d", balances.calls)
	}
	if totals.Subtotal != 10000 {
		t.Fatalf("expected subtotal 10000, got %d", totals.Subtotal)
	}
	if totals.CoinsRedeemed {
		t.Fatal("expected redemption disabled")
	}
}

func TestPriceWithRedemptionUsesBalanceSnapshot(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	carts.Lines[1] = []model.CartLine{{ProductID: 1, Quantity: 1}}
	uc := NewCheckoutUseCase(
		carts,
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		&balanceProviderStub{snapshot: &model.CoinBalance{Balance: 300}},
		testShipping(),
		false,
	)

	totals, err := uc.Price(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cap is 5% of 100 units = 500 coins, limited by the 300-coin balance.
	if totals.CoinsApplied != 300 {
		t.Fatalf("expected 300 coins applied, got %d", totals.CoinsApplied)
	}
	if totals.FinalAmount != 9700 {
		t.Fatalf("expected final 9700, got %d", totals.FinalAmount)
	}
}

func TestPriceWithRedemptionFailsWhenBalanceUnavailable(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	carts.Lines[1] = []model.CartLine{{ProductID: 1, Quantity: 1}}
	uc := NewCheckoutUseCase(
		carts,
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		&balanceProviderStub{err: errors.New("ledger down")},
		testShipping(),
		false,
	)

	if _, err := uc.Price(context.Background(), 1, true); err == nil {
		t.Fatal("expected error when balance unavailable with redemption on")
	}
}

func TestPriceMissingCatalogRecordDegradesToZero(t *testing.T) {
	carts := testhelpers.NewCartRepositoryStub()
	carts.Lines[1] = []model.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
	}
	uc := NewCheckoutUseCase(
		carts,
		testhelpers.NewCatalogRepositoryStub(testProduct(1, 10000)),
		&balanceProviderStub{},
		testShipping(),
		false,
	)

	totals, err := uc.Price(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals.Lines) != 2 {
		t.Fatalf("expected both lines priced, got %d", len(totals.Lines))
	}
	if totals.Subtotal != 10000 {
		t.Fatalf("expected missing product priced at zero, subtotal %d", totals.Subtotal)
	}
}

func TestPriceEmptyCart(t *testing.T) {
	uc := NewCheckoutUseCase(
		testhelpers.NewCartRepositoryStub(),
		testhelpers.NewCatalogRepositoryStub(),
		&balanceProviderStub{},
		testShipping(),
		false,
	)

	totals, err := uc.Price(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 0 || totals.GrandTotal != 2500 {
		t.Fatalf("expected empty cart with shipping fee only, got %+v", totals)
	}
}
