// Package marketplace reads public collection statistics from Magic Eden.
package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"buxdao-core/internal/observability"
)

// Defaults.
const (
	DefaultBaseURL = "https://api-mainnet.magiceden.dev"
	DefaultTimeout = 15 * time.Second

	sourceMagicEden = "magiceden"
	maxBodyBytes    = 1 << 20
)

// ErrInvalidSymbol is returned for a symbol that is not a plain collection slug.
var ErrInvalidSymbol = errors.New("invalid collection symbol")

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Client fetches collection stats. Responses are passed through unchanged.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Magic Eden client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectionStats returns the raw JSON stats document of a collection.
func (c *Client) CollectionStats(ctx context.Context, symbol string) (json.RawMessage, error) {
	if !symbolPattern.MatchString(symbol) {
		return nil, ErrInvalidSymbol
	}

	start := time.Now()
	defer func() {
		observability.RecordOracleCall(sourceMagicEden, time.Since(start).Seconds())
	}()

	endpoint := c.baseURL + "/v2/collections/" + url.PathEscape(symbol) + "/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, errors.New("response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
