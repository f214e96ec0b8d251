package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gearmart/checkout/internal/adapter/ledger"
	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/server/http/dto"
)

// StreakHandler manages daily bonus endpoints.
type StreakHandler struct {
	facade StreakFacade
}

// NewStreakHandler constructs StreakHandler.
func NewStreakHandler(facade StreakFacade) *StreakHandler {
	return &StreakHandler{facade: facade}
}

// State handles GET /api/user/streak. An unreachable ledger yields a neutral
// unavailable response instead of a guessed eligibility.
func (h *StreakHandler) State(c *gin.Context) {
	userID := CurrentUserID(c)
	state, err := h.facade.StreakState(c.Request.Context(), userID)
	if err != nil {
		writeStreakError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StreakResponse{
		CurrentStreak:         state.CurrentStreak,
		CanClaim:              state.CanClaim,
		SecondsUntilNextClaim: state.SecondsUntilNextClaim,
		NextBonusAmount:       state.NextBonusAmount,
	})
}

// Claim handles POST /api/user/streak/claim.
func (h *StreakHandler) Claim(c *gin.Context) {
	userID := CurrentUserID(c)
	result, err := h.facade.ClaimDailyBonus(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrClaimInFlight), errors.Is(err, domainErrors.ErrClaimUnavailable):
			c.Status(http.StatusConflict)
		default:
			writeStreakError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ClaimResponse{
		Streak:      result.NewStreak,
		BonusAmount: result.BonusAmount,
	})
}

func writeStreakError(c *gin.Context, err error) {
	var rateErr ledger.TooManyRequestsError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
		c.Status(http.StatusTooManyRequests)
		return
	}
	c.Status(http.StatusServiceUnavailable)
}
