// Package exchange implements the HTTP and WebSocket clients for the
// exchange's public API: pushed order-book snapshots, polled trade history
// and balances, and order placement/cancellation.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client is the REST client for the exchange API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client for the given API root,
// e.g. "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Trades fetches the full trade history. The exchange returns trades
// most-recent-first, but callers must not rely on ordering.
func (c *Client) Trades(ctx context.Context) ([]domain.Trade, error) {
	body, err := c.do(ctx, http.MethodGet, "/trades", nil)
	if err != nil {
		return nil, fmt.Errorf("exchange: get trades: %w", err)
	}
	return parseTrades(body)
}

// Balances fetches the per-asset balances for the authenticated user.
func (c *Client) Balances(ctx context.Context) (map[string]domain.Balance, error) {
	body, err := c.do(ctx, http.MethodGet, "/balance", nil)
	if err != nil {
		return nil, fmt.Errorf("exchange: get balances: %w", err)
	}
	return parseBalances(body)
}

// PlaceOrder submits a new order and returns the fills it produced. An empty
// fill list means the order rests on the book. A non-2xx response means the
// engine declined the order and is reported as domain.ErrSubmissionRejected;
// any other failure means the order's fate is unknown to the caller.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) ([]domain.Trade, error) {
	payload := wireOrderRequest{
		Price:    req.Price.String(),
		Quantity: req.Quantity,
		Side:     string(req.Side),
		Type:     string(req.Type),
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("exchange: encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("exchange: place order: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("exchange: place order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("exchange: place order: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("exchange: place order: status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrSubmissionRejected)
	}

	return parseTrades(body)
}

// CancelOrder cancels a resting order by ID. An unknown order is reported as
// domain.ErrOrderNotFound.
func (c *Client) CancelOrder(ctx context.Context, orderID uint64) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/order/%d", c.baseURL, orderID), nil)
	if err != nil {
		return fmt.Errorf("exchange: cancel order %d: %w", orderID, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("exchange: cancel order %d: %w", orderID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("exchange: cancel order %d: %w", orderID, domain.ErrOrderNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("exchange: cancel order %d: status %d", orderID, resp.StatusCode)
	}
	return nil
}

// do issues a request with no body and returns the response body on 2xx.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
