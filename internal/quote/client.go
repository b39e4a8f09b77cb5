package quote

import (
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the upstream quote feed's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	loc        *time.Location

	barRange    string // Trailing window, e.g. "1d"
	granularity string // Bar interval, e.g. "1m"

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new quote feed client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		loc:          time.UTC,
		barRange:     "1d",
		granularity:  "1m",
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithWindow sets the trailing range and bar granularity requested per fetch.
func WithWindow(barRange, granularity string) ClientOption {
	return func(c *Client) {
		c.barRange = barRange
		c.granularity = granularity
	}
}

// WithLocation sets the location snapshot timestamps are normalized to.
func WithLocation(loc *time.Location) ClientOption {
	return func(c *Client) {
		c.loc = loc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
