package model

import "math"

// Default percentages applied when catalog data is missing or malformed.
const (
	DefaultCashbackPercent      = 2.0
	DefaultDiscountPercent      = 0.0
	DefaultRedemptionCapPercent = 0.0
)

// PricingConfig holds per-product pricing parameters. All monetary values are
// integer cents; percentages are already normalized via NormalizePricing.
type PricingConfig struct {
	UnitPrice            int64
	DiscountPercent      float64
	CashbackPercent      float64
	RedemptionCapPercent float64
}

// Product describes a catalog entry as seen by the pricing engine.
type Product struct {
	ID      int64
	Name    string
	Pricing PricingConfig
}

// NormalizePricing builds PricingConfig from raw catalog values, applying
// defaults at the boundary: nil or NaN percentages fall back to defaults,
// negatives clamp to zero, discount and redemption cap clamp to 100.
// A malformed catalog record must never block checkout.
func NormalizePricing(unitPrice int64, discount, cashback, redemptionCap *float64) PricingConfig {
	if unitPrice < 0 {
		unitPrice = 0
	}
	return PricingConfig{
		UnitPrice:            unitPrice,
		DiscountPercent:      normalizePercent(discount, DefaultDiscountPercent, true),
		CashbackPercent:      normalizePercent(cashback, DefaultCashbackPercent, false),
		RedemptionCapPercent: normalizePercent(redemptionCap, DefaultRedemptionCapPercent, true),
	}
}

func normalizePercent(v *float64, def float64, capped bool) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return def
	}
	p := *v
	if p < 0 {
		return 0
	}
	if capped && p > 100 {
		return 100
	}
	return p
}
