package model

// PricedLine is the derived pricing of one cart line. It has no identity of
// its own and is recomputed on every pricing pass. Coins are integers with
// 100 coins equal to one currency unit, so one coin converts to one cent.
type PricedLine struct {
	ProductID          int64
	Name               string
	Quantity           int
	OriginalAmount     int64
	DiscountAmount     int64
	DiscountedAmount   int64
	CashbackCoins      int64
	MaxRedeemableCoins int64
	CoinsApplied       int64
	RedemptionAmount   int64
}

// CartTotals is the aggregated result of pricing a whole cart.
type CartTotals struct {
	Lines             []PricedLine
	Subtotal          int64
	TotalDiscount     int64
	CoinsEarned       int64
	CoinsNeeded       int64
	CoinsApplied      int64
	CoinsDiscount     int64
	FinalAmount       int64
	ShippingFee       int64
	GrandTotal        int64
	InstallmentAmount int64
	CoinsRedeemed     bool
}
