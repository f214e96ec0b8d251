package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Price handles GET /api/user/cart.
func (h *CartHandler) Price(c *gin.Context) {
	userID := CurrentUserID(c)
	redeem := c.Query("redeem") == "true"

	totals, err := h.facade.PriceCart(c.Request.Context(), userID, redeem)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(totals))
}

// Add handles POST /api/user/cart.
func (h *CartHandler) Add(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	line := model.CartLine{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	}
	if _, err := h.facade.AddCartLine(c.Request.Context(), userID, line); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusCreated)
}

// UpdateQuantity handles PATCH /api/user/cart/items/:productID.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := CurrentUserID(c)
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.UpdateCartQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// Remove handles DELETE /api/user/cart/items/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	userID := CurrentUserID(c)
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveCartLine(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Clear handles DELETE /api/user/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.ClearCart(c.Request.Context(), userID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
