package pricing

import (
	"math"

	"github.com/gearmart/checkout/internal/domain/model"
)

// PriceLine derives the priced view of a single cart line. It is a pure
// function of the line and the product's pricing configuration: repeated calls
// with the same inputs always return the same output.
//
// Rounding contract, in this order:
//   - discount amount rounds to the nearest cent;
//   - the discounted amount is ceiled to a whole currency unit before any
//     coin percentage is applied, so cashback is never under-awarded on
//     fractional cents;
//   - cashback coins round to the nearest coin, the redeemable cap floors.
func PriceLine(line model.CartLine, product model.Product) model.PricedLine {
	priced := model.PricedLine{
		ProductID: line.ProductID,
		Name:      product.Name,
		Quantity:  line.Quantity,
	}
	if line.Quantity <= 0 {
		return priced
	}

	cfg := product.Pricing
	discountPct := clampPercent(cfg.DiscountPercent, 100)
	cashbackPct := clampPercent(cfg.CashbackPercent, math.Inf(1))
	capPct := clampPercent(cfg.RedemptionCapPercent, 100)

	priced.OriginalAmount = cfg.UnitPrice * int64(line.Quantity)
	priced.DiscountAmount = roundCents(float64(priced.OriginalAmount) * discountPct / 100)
	priced.DiscountedAmount = priced.OriginalAmount - priced.DiscountAmount

	// Whole currency units, ceiled. 100 coins = 1 unit, so a coin amount of
	// units*pct needs no further scaling.
	units := ceilUnits(priced.DiscountedAmount)
	priced.CashbackCoins = int64(math.Round(float64(units) * cashbackPct))
	priced.MaxRedeemableCoins = int64(math.Floor(float64(units) * capPct))

	return priced
}

func clampPercent(p, upper float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > upper {
		return upper
	}
	return p
}

func ceilUnits(cents int64) int64 {
	if cents <= 0 {
		return 0
	}
	return (cents + 99) / 100
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
