package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the ledger service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes the coin-ledger operations this engine is allowed to call.
// The ledger owns all balance and streak state; every response here is a
// snapshot, never something the engine may mutate locally.
type Client interface {
	Balance(ctx context.Context, userID int64) (*model.CoinBalance, error)
	Eligibility(ctx context.Context, userID int64) (*model.StreakState, error)
	Claim(ctx context.Context, userID int64) (*model.ClaimResult, error)
}

// HTTPClient implements Client via the ledger service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type balanceResponse struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
}

type eligibilityResponse struct {
	CurrentStreak         int   `json:"current_streak"`
	CanClaim              bool  `json:"can_claim"`
	SecondsUntilNextClaim int64 `json:"seconds_until_next_claim"`
	NextBonusAmount       int64 `json:"next_bonus_amount"`
}

type claimResponse struct {
	Streak      int   `json:"streak"`
	BonusAmount int64 `json:"bonus_amount"`
}

// NewHTTPClient creates a ledger client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ledger url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ledger url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Balance fetches the current coin balance snapshot for the user.
// An unknown user maps to ErrNotFound; callers decide whether that means
// a zero balance.
func (c *HTTPClient) Balance(ctx context.Context, userID int64) (*model.CoinBalance, error) {
	var data balanceResponse
	if err := c.get(ctx, c.endpoint(userID, "balance"), &data); err != nil {
		return nil, err
	}
	return &model.CoinBalance{
		Balance:     data.Balance,
		TotalEarned: data.TotalEarned,
		TotalSpent:  data.TotalSpent,
	}, nil
}

// Eligibility fetches the daily bonus state for the user.
func (c *HTTPClient) Eligibility(ctx context.Context, userID int64) (*model.StreakState, error) {
	var data eligibilityResponse
	if err := c.get(ctx, c.endpoint(userID, "daily-bonus"), &data); err != nil {
		return nil, err
	}
	return &model.StreakState{
		CurrentStreak:         data.CurrentStreak,
		CanClaim:              data.CanClaim,
		SecondsUntilNextClaim: data.SecondsUntilNextClaim,
		NextBonusAmount:       data.NextBonusAmount,
	}, nil
}

// Claim submits a daily bonus claim. The ledger is the final arbiter of
// one-claim-per-window: a conflict maps to ErrClaimUnavailable.
func (c *HTTPClient) Claim(ctx context.Context, userID int64) (*model.ClaimResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(userID, "daily-bonus/claim"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.asError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data claimResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &model.ClaimResult{NewStreak: data.Streak, BonusAmount: data.BonusAmount}, nil
}

func (c *HTTPClient) endpoint(userID int64, suffix string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/users/", strconv.FormatInt(userID, 10), suffix)
	return endpoint.String()
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.asError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *HTTPClient) asError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	case http.StatusConflict:
		return domainErrors.ErrClaimUnavailable
	case http.StatusPaymentRequired:
		return domainErrors.ErrInsufficientBalance
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ledger request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("ledger error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
