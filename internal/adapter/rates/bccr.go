// Package rates provides exchange-rate providers: an HTTP client for a
// central-bank style rate endpoint and a fixed provider for local
// development and tests.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

const defaultTimeout = 10 * time.Second

// BCCRClient reads the colones/USD buy and sell rates from an HTTP
// endpoint returning {"buy": "...", "sell": "..."} decimals. Every call
// fetches fresh rates; nothing is cached.
type BCCRClient struct {
	baseURL string
	client  *http.Client
}

// NewBCCRClient creates a client for the given rate endpoint base URL.
func NewBCCRClient(baseURL string) *BCCRClient {
	return &BCCRClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type ratesResponse struct {
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
}

// BuyRate returns the current buy rate (colones per USD bought).
func (c *BCCRClient) BuyRate(ctx context.Context) (decimal.Decimal, error) {
	r, err := c.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Buy, nil
}

// SellRate returns the current sell rate (colones per USD sold).
func (c *BCCRClient) SellRate(ctx context.Context) (decimal.Decimal, error) {
	r, err := c.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Sell, nil
}

func (c *BCCRClient) fetch(ctx context.Context) (ratesResponse, error) {
	var out ratesResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rates", nil)
	if err != nil {
		return out, fmt.Errorf("%w: rate provider: %v", domain.ErrCollaboratorUnavailable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: rate provider: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("%w: rate provider returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: rate provider response: %v", domain.ErrCollaboratorUnavailable, err)
	}
	if out.Buy.LessThanOrEqual(decimal.Zero) || out.Sell.LessThanOrEqual(decimal.Zero) {
		return out, fmt.Errorf("%w: rate provider returned non-positive rate", domain.ErrCollaboratorUnavailable)
	}
	return out, nil
}

// Static is a fixed-rate provider for development and tests.
type Static struct {
	Buy  decimal.Decimal
	Sell decimal.Decimal
}

// BuyRate returns the fixed buy rate.
func (s Static) BuyRate(ctx context.Context) (decimal.Decimal, error) {
	return s.Buy, nil
}

// SellRate returns the fixed sell rate.
func (s Static) SellRate(ctx context.Context) (decimal.Decimal, error) {
	return s.Sell, nil
}
