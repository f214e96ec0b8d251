package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/server/http/dto"
	"github.com/gearmart/checkout/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toCartResponse(totals *model.CartTotals) dto.CartResponse {
	lines := make([]dto.PricedLineResponse, 0, len(totals.Lines))
	for _, line := range totals.Lines {
		lines = append(lines, dto.PricedLineResponse{
			ProductID:          line.ProductID,
			Name:               line.Name,
			Quantity:           line.Quantity,
			OriginalAmount:     line.OriginalAmount,
			DiscountAmount:     line.DiscountAmount,
			DiscountedAmount:   line.DiscountedAmount,
			CashbackCoins:      line.CashbackCoins,
			MaxRedeemableCoins: line.MaxRedeemableCoins,
			CoinsApplied:       line.CoinsApplied,
			RedemptionAmount:   line.RedemptionAmount,
		})
	}
	return dto.CartResponse{
		Lines:             lines,
		Subtotal:          totals.Subtotal,
		TotalDiscount:     totals.TotalDiscount,
		CoinsEarned:       totals.CoinsEarned,
		CoinsNeeded:       totals.CoinsNeeded,
		CoinsApplied:      totals.CoinsApplied,
		CoinsDiscount:     totals.CoinsDiscount,
		FinalAmount:       totals.FinalAmount,
		ShippingFee:       totals.ShippingFee,
		GrandTotal:        totals.GrandTotal,
		InstallmentAmount: totals.InstallmentAmount,
		CoinsRedeemed:     totals.CoinsRedeemed,
	}
}
