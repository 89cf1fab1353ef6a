// Package brokerage is the REST client for the upstream quote/execution
// provider. It reports failures as-is; retries live in the broker layer.
package brokerage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"tradingplaces/internal/models"
)

type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brokerage API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

type quoteResponse struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

// Quote fetches the current price for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if ticker == "" {
		return decimal.Zero, fmt.Errorf("ticker is required")
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/quote/"+url.PathEscape(ticker), nil)
	if err != nil {
		return decimal.Zero, err
	}
	var out quoteResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode quote: %w", err)
	}
	return out.Price, nil
}

type tradeRequest struct {
	Side     string `json:"side"`
	Ticker   string `json:"ticker"`
	Quantity int    `json:"quantity"`
}

type tradeResponse struct {
	Value decimal.Decimal `json:"value"`
}

// Execute places a market order and returns its realized financial value.
func (c *Client) Execute(ctx context.Context, side models.Side, ticker string, quantity int) (decimal.Decimal, error) {
	if ticker == "" {
		return decimal.Zero, fmt.Errorf("ticker is required")
	}
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("quantity must be positive")
	}
	raw, err := c.doRequest(ctx, http.MethodPost, "/trade", tradeRequest{
		Side:     string(side),
		Ticker:   ticker,
		Quantity: quantity,
	})
	if err != nil {
		return decimal.Zero, err
	}
	var out tradeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode trade result: %w", err)
	}
	return out.Value, nil
}
