package dto

// AddLineRequest describes a cart line addition payload.
type AddLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateQuantityRequest sets the quantity of an existing line; zero removes it.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PricedLineResponse is one priced cart line. Amounts are integer cents,
// coins are integers with 100 coins per currency unit.
type PricedLineResponse struct {
	ProductID          int64  `json:"product_id"`
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	OriginalAmount     int64  `json:"original_amount"`
	DiscountAmount     int64  `json:"discount_amount"`
	DiscountedAmount   int64  `json:"discounted_amount"`
	CashbackCoins      int64  `json:"cashback_coins"`
	MaxRedeemableCoins int64  `json:"max_redeemable_coins"`
	CoinsApplied       int64  `json:"coins_applied,omitempty"`
	RedemptionAmount   int64  `json:"redemption_amount,omitempty"`
}

// CartResponse is the priced checkout view.
type CartResponse struct {
	Lines             []PricedLineResponse `json:"lines"`
	Subtotal          int64                `json:"subtotal"`
	TotalDiscount     int64                `json:"total_discount"`
	CoinsEarned       int64                `json:"coins_earned"`
	CoinsNeeded       int64                `json:"coins_needed"`
	CoinsApplied      int64                `json:"coins_applied"`
	CoinsDiscount     int64                `json:"coins_discount"`
	FinalAmount       int64                `json:"final_amount"`
	ShippingFee       int64                `json:"shipping_fee"`
	GrandTotal        int64                `json:"grand_total"`
	InstallmentAmount int64                `json:"installment_amount"`
	CoinsRedeemed     bool                 `json:"coins_redeemed"`
}
