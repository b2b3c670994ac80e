// Package moex implements the quote fetcher against the MOEX ISS REST API.
package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okorolev/fundwatch/internal/domain"
)

// Client is the REST client for the MOEX ISS securities endpoint. It issues
// one unauthenticated GET per instrument and normalizes the marketdata block
// into a domain.MarketSnapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new ISS client.
//
// baseURL is the ISS root, e.g. "https://iss.moex.com". timeout bounds each
// request; zero falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the current marketdata snapshot for one board/ticker pair.
// Only the first data row is consulted. An empty marketdata block is reported
// as domain.ErrNoQuote so callers can treat "market closed" and "unknown
// security" uniformly.
func (c *Client) Fetch(ctx context.Context, board, ticker string) (domain.MarketSnapshot, error) {
	if board == "" || ticker == "" {
		return nil, fmt.Errorf("moex: board and ticker must not be empty")
	}

	path := fmt.Sprintf("/iss/engines/stock/markets/shares/boards/%s/securities/%s.json",
		url.PathEscape(board), url.PathEscape(ticker))

	params := url.Values{}
	params.Set("iss.meta", "off")
	params.Set("iss.only", "marketdata")

	body, err := c.doGet(ctx, path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("moex: fetch %s/%s: %w", board, ticker, err)
	}

	var resp issResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("moex: decode %s/%s: %w", board, ticker, err)
	}

	snap, ok := resp.MarketData.toSnapshot()
	if !ok {
		return nil, fmt.Errorf("moex: %s/%s: %w", board, ticker, domain.ErrNoQuote)
	}

	return snap, nil
}

// doGet sends an unauthenticated GET request to the ISS API.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
