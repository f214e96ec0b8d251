package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/server/http/dto"
)

// SettlementHandler finalizes carts into order-intake handoffs.
type SettlementHandler struct {
	facade SettlementFacade
}

// NewSettlementHandler constructs SettlementHandler.
func NewSettlementHandler(facade SettlementFacade) *SettlementHandler {
	return &SettlementHandler{facade: facade}
}

// Create handles POST /api/user/cart/settlement.
func (h *SettlementHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	msg, err := h.facade.Settle(c.Request.Context(), userID, req.Redeem, req.Destination)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.SettlementResponse{
		Destination: msg.Destination,
		Message:     msg.Body,
		Link:        msg.Link,
	})
}
