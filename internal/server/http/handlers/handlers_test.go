package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gearmart/checkout/internal/adapter/ledger"
	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/server/http/dto"
	"github.com/gearmart/checkout/internal/server/http/middleware"
	"github.com/gearmart/checkout/internal/settlement"
	testhelpers "github.com/gearmart/checkout/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	routePath := path
	if i := strings.Index(routePath, "?"); i >= 0 {
		routePath = routePath[:i]
	}
	router.Handle(method, routePath, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestCartHandlerPrice(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{PriceCartFn: func(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error) {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		if !redeem {
			t.Fatal("expected redeem flag to be forwarded")
		}
		return &model.CartTotals{
			Lines: []model.PricedLine{{
				ProductID:        1,
				Name:             "hoodie",
				Quantity:         2,
				OriginalAmount:   39999,
				DiscountedAmount: 39999,
				CashbackCoins:    800,
			}},
			Subtotal:    39999,
			CoinsEarned: 800,
			FinalAmount: 39999,
			GrandTotal:  39999,
		}, nil
	}}

	resp := performRequest(t, http.MethodGet, "/cart?redeem=true", NewCartHandler(facade).Price, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.CartResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(payload.Lines) != 1 || payload.Lines[0].CashbackCoins != 800 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.CoinsEarned != 800 || payload.GrandTotal != 39999 {
		t.Fatalf("unexpected totals %+v", payload)
	}
}

func TestCartHandlerPriceFailure(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{PriceCartFn: func(ctx context.Context, userID int64, redeem bool) (*model.CartTotals, error) {
		return nil, errors.New("boom")
	}}
	resp := performRequest(t, http.MethodGet, "/cart", NewCartHandler(facade).Price, asUser(7), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCartHandlerAdd(t *testing.T) {
	var captured model.CartLine
	facade := testhelpers.CheckoutFacadeStub{AddCartLineFn: func(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
		captured = line
		return &line, nil
	}}
	body, _ := json.Marshal(dto.AddLineRequest{ProductID: 5, Quantity: 2, Size: "M", Color: "black"})
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(facade).Add, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if captured.ProductID != 5 || captured.Quantity != 2 || captured.Size != "M" {
		t.Fatalf("unexpected line forwarded: %+v", captured)
	}
}

func TestCartHandlerAddFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.CheckoutFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed json",
			facade: testhelpers.CheckoutFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name:   "missing quantity",
			facade: testhelpers.CheckoutFacadeStub{},
			body:   []byte(`{"product_id":5}`),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid quantity",
			facade: testhelpers.CheckoutFacadeStub{AddCartLineFn: func(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
				return nil, domainErrors.ErrInvalidQuantity
			}},
			body:   []byte(`{"product_id":5,"quantity":-1}`),
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown product",
			facade: testhelpers.CheckoutFacadeStub{AddCartLineFn: func(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
				return nil, domainErrors.ErrNotFound
			}},
			body:   []byte(`{"product_id":5,"quantity":1}`),
			status: http.StatusNotFound,
		},
		{
			name: "storage failure",
			facade: testhelpers.CheckoutFacadeStub{AddCartLineFn: func(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
				return nil, errors.New("boom")
			}},
			body:   []byte(`{"product_id":5,"quantity":1}`),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(tt.facade).Add, asUser(7), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCartHandlerUpdateQuantity(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{UpdateCartQuantityFn: func(ctx context.Context, userID, productID int64, quantity int) error {
		if productID != 9 || quantity != 3 {
			t.Fatalf("unexpected arguments %d %d", productID, quantity)
		}
		return nil
	}}
	resp := performRequestAt(t, http.MethodPatch, "/cart/items/9", "/cart/items/:productID", NewCartHandler(facade).UpdateQuantity, asUser(7), []byte(`{"quantity":3}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestCartHandlerUpdateQuantityFailures(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		facade testhelpers.CheckoutFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "bad product id",
			path:   "/cart/items/abc",
			facade: testhelpers.CheckoutFacadeStub{},
			body:   []byte(`{"quantity":3}`),
			status: http.StatusBadRequest,
		},
		{
			name: "negative quantity",
			path: "/cart/items/9",
			facade: testhelpers.CheckoutFacadeStub{UpdateCartQuantityFn: func(ctx context.Context, userID, productID int64, quantity int) error {
				return domainErrors.ErrInvalidQuantity
			}},
			body:   []byte(`{"quantity":-1}`),
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "line missing",
			path: "/cart/items/9",
			facade: testhelpers.CheckoutFacadeStub{UpdateCartQuantityFn: func(ctx context.Context, userID, productID int64, quantity int) error {
				return domainErrors.ErrNotFound
			}},
			body:   []byte(`{"quantity":3}`),
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequestAt(t, http.MethodPatch, tt.path, "/cart/items/:productID", NewCartHandler(tt.facade).UpdateQuantity, asUser(7), tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func performRequestAt(t *testing.T, method, path, route string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartHandlerRemove(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{RemoveCartLineFn: func(ctx context.Context, userID, productID int64) error {
		if productID != 9 {
			t.Fatalf("unexpected product id %d", productID)
		}
		return nil
	}}
	resp := performRequestAt(t, http.MethodDelete, "/cart/items/9", "/cart/items/:productID", NewCartHandler(facade).Remove, asUser(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	missing := testhelpers.CheckoutFacadeStub{RemoveCartLineFn: func(ctx context.Context, userID, productID int64) error {
		return domainErrors.ErrNotFound
	}}
	resp = performRequestAt(t, http.MethodDelete, "/cart/items/9", "/cart/items/:productID", NewCartHandler(missing).Remove, asUser(7), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCartHandlerClear(t *testing.T) {
	cleared := false
	facade := testhelpers.CheckoutFacadeStub{ClearCartFn: func(ctx context.Context, userID int64) error {
		cleared = true
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/cart", NewCartHandler(facade).Clear, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !cleared {
		t.Fatal("expected clear to be forwarded")
	}
}

func TestBalanceHandlerSummary(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{BalanceFn: func(ctx context.Context, userID int64) (*model.CoinBalance, error) {
		return &model.CoinBalance{Balance: 1250, TotalEarned: 2000, TotalSpent: 750}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/balance", NewBalanceHandler(facade).Summary, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.BalanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if payload.Balance != 1250 || payload.TotalEarned != 2000 || payload.TotalSpent != 750 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBalanceHandlerSummaryUnavailable(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{BalanceFn: func(ctx context.Context, userID int64) (*model.CoinBalance, error) {
		return nil, errors.New("ledger down")
	}}
	resp := performRequest(t, http.MethodGet, "/balance", NewBalanceHandler(facade).Summary, asUser(7), nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestStreakHandlerState(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{StreakStateFn: func(ctx context.Context, userID int64) (*model.StreakState, error) {
		return &model.StreakState{CurrentStreak: 4, CanClaim: true, NextBonusAmount: 55}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/streak", NewStreakHandler(facade).State, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.StreakResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if payload.CurrentStreak != 4 || !payload.CanClaim || payload.NextBonusAmount != 55 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestStreakHandlerStateUnavailable(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{StreakStateFn: func(ctx context.Context, userID int64) (*model.StreakState, error) {
		return nil, domainErrors.ErrEligibilityUnknown
	}}
	resp := performRequest(t, http.MethodGet, "/streak", NewStreakHandler(facade).State, asUser(7), nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestStreakHandlerStateRateLimited(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{StreakStateFn: func(ctx context.Context, userID int64) (*model.StreakState, error) {
		return nil, ledger.TooManyRequestsError{RetryAfter: 30 * time.Second}
	}}
	resp := performRequest(t, http.MethodGet, "/streak", NewStreakHandler(facade).State, asUser(7), nil, nil)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "30" {
		t.Fatalf("unexpected retry header %q", resp.Header().Get("Retry-After"))
	}
}

func TestStreakHandlerClaim(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{ClaimDailyBonusFn: func(ctx context.Context, userID int64) (*model.ClaimResult, error) {
		return &model.ClaimResult{NewStreak: 5, BonusAmount: 60}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/streak/claim", NewStreakHandler(facade).Claim, asUser(7), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.ClaimResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if payload.Streak != 5 || payload.BonusAmount != 60 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestStreakHandlerClaimFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "already claimed", err: domainErrors.ErrClaimUnavailable, status: http.StatusConflict},
		{name: "claim in flight", err: domainErrors.ErrClaimInFlight, status: http.StatusConflict},
		{name: "rate limited", err: ledger.TooManyRequestsError{RetryAfter: 5 * time.Second}, status: http.StatusTooManyRequests},
		{name: "ledger down", err: errors.New("boom"), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.CheckoutFacadeStub{ClaimDailyBonusFn: func(ctx context.Context, userID int64) (*model.ClaimResult, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/streak/claim", NewStreakHandler(facade).Claim, asUser(7), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestSettlementHandlerCreate(t *testing.T) {
	facade := testhelpers.CheckoutFacadeStub{SettleFn: func(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error) {
		if !redeem || destination != "15551234567" {
			t.Fatalf("unexpected arguments %v %q", redeem, destination)
		}
		return &settlement.Message{Destination: destination, Body: "order", Link: "https://wa.me/15551234567?text=order"}, nil
	}}
	body, _ := json.Marshal(dto.SettlementRequest{Redeem: true, Destination: "15551234567"})
	resp := performRequest(t, http.MethodPost, "/settlement", NewSettlementHandler(facade).Create, asUser(7), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.SettlementResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if payload.Message != "order" || payload.Link == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestSettlementHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty cart", err: domainErrors.ErrEmptyCart, status: http.StatusUnprocessableEntity},
		{name: "pricing failure", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.CheckoutFacadeStub{SettleFn: func(ctx context.Context, userID int64, redeem bool, destination string) (*settlement.Message, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/settlement", NewSettlementHandler(facade).Create, asUser(7), []byte(`{"redeem":false}`), map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}
