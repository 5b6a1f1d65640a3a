package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves the raw markup for a URL. The pipeline depends only on
// this contract; tests substitute an httptest-backed client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client is the resty-backed Fetcher used against the live program site.
type Client struct {
	http *resty.Client
}

// ClientOptions configures the HTTP client. Zero values fall back to
// conservative defaults.
type ClientOptions struct {
	UserAgent  string
	Timeout    time.Duration
	RetryCount int
}

// NewClient creates a Client that identifies itself with the given
// User-Agent on every request.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	c := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetHeader("User-Agent", opts.UserAgent)
	return &Client{http: c}
}

// Fetch retrieves a page, failing on transport errors and non-200 statuses.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
