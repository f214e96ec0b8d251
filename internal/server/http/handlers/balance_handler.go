package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gearmart/checkout/internal/server/http/dto"
)

// BalanceHandler manages balance-related endpoints.
type BalanceHandler struct {
	facade BalanceFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(facade BalanceFacade) *BalanceHandler {
	return &BalanceHandler{facade: facade}
}

// Summary handles GET /api/user/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	snapshot, err := h.facade.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance:     snapshot.Balance,
		TotalEarned: snapshot.TotalEarned,
		TotalSpent:  snapshot.TotalSpent,
	})
}
