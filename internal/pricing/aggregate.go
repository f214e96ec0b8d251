package pricing

import "github.com/gearmart/checkout/internal/domain/model"

// CoinSettings controls coin redemption for one aggregation pass.
//
// SharedBalance selects how the per-line redemption cap meets the balance.
// When false, every line independently caps against the full balance: the sum
// of applied coins can exceed what the user holds. That is the documented
// storefront behavior and the ledger service is expected to reject the excess
// at commit time. When true, lines draw from a running balance instead.
type CoinSettings struct {
	Enabled       bool
	Balance       int64
	SharedBalance bool
}

// ShippingPolicy holds the configured shipping rule. The fee is waived when
// the post-discount amount meets or exceeds FreeThreshold.
type ShippingPolicy struct {
	FreeThreshold     int64
	Fee               int64
	InstallmentMonths int
}

// Aggregate folds priced lines into cart-level totals. It is side-effect-free:
// input lines are never mutated and identical inputs yield identical totals.
func Aggregate(lines []model.PricedLine, coins CoinSettings, shipping ShippingPolicy) model.CartTotals {
	totals := model.CartTotals{
		Lines:         make([]model.PricedLine, len(lines)),
		CoinsRedeemed: coins.Enabled,
	}

	remaining := coins.Balance
	if remaining < 0 {
		remaining = 0
	}

	for i, line := range lines {
		totals.Subtotal += line.OriginalAmount
		totals.TotalDiscount += line.DiscountAmount
		totals.CoinsEarned += line.CashbackCoins
		totals.CoinsNeeded += line.MaxRedeemableCoins

		if coins.Enabled {
			available := coins.Balance
			if available < 0 {
				available = 0
			}
			if coins.SharedBalance {
				available = remaining
			}
			use := line.MaxRedeemableCoins
			if use > available {
				use = available
			}
			line.CoinsApplied = use
			line.RedemptionAmount = use
			totals.CoinsApplied += use
			if coins.SharedBalance {
				remaining -= use
			}
		}
		totals.Lines[i] = line
	}

	totals.CoinsDiscount = totals.CoinsApplied
	totals.FinalAmount = totals.Subtotal - totals.TotalDiscount - totals.CoinsDiscount
	if totals.FinalAmount < 0 {
		totals.FinalAmount = 0
	}

	if totals.FinalAmount < shipping.FreeThreshold {
		totals.ShippingFee = shipping.Fee
	}
	totals.GrandTotal = totals.FinalAmount + totals.ShippingFee

	months := shipping.InstallmentMonths
	if months <= 0 {
		months = 12
	}
	totals.InstallmentAmount = totals.GrandTotal / int64(months)

	return totals
}
