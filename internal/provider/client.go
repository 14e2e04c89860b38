package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 64 << 20
)

// Page is one decoded provider response.
type Page struct {
	Posts                []domain.RawNews
	Next                 string
	MoreResultsAvailable int
	// TotalResults is nil when the provider omitted it.
	TotalResults *int
}

type envelope struct {
	Posts                json.RawMessage `json:"posts"`
	Next                 *string         `json:"next"`
	MoreResultsAvailable *int            `json:"moreResultsAvailable"`
	TotalResults         *int            `json:"totalResults"`
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Client)

type Client struct {
	http      Doer
	userAgent string
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "news-ingest/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent overrides the default User-Agent. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// FetchPage performs one GET. It does not retry.
func (c *Client) FetchPage(ctx context.Context, rawURL string) (*Page, error) {
	logURL := RedactToken(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperr.NewTransport(logURL, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.NewTransport(logURL, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.NewTransport(logURL, 0, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("Provider returned non-success status", "url", logURL, "status", resp.StatusCode, "body", truncate(body, 512))
		return nil, apperr.NewTransport(logURL, resp.StatusCode, nil)
	}

	return decodePage(body)
}

func decodePage(body []byte) (*Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperr.NewFormat("response body is not a json object", err)
	}

	posts := bytes.TrimSpace(env.Posts)
	if len(posts) == 0 || bytes.Equal(posts, []byte("null")) {
		return nil, apperr.NewFormat("posts field is missing", nil)
	}
	if posts[0] != '[' {
		return nil, apperr.NewFormat("posts field is not an array", nil)
	}

	var records []domain.RawNews
	if err := json.Unmarshal(posts, &records); err != nil {
		return nil, apperr.NewFormat("posts could not be decoded", err)
	}

	page := &Page{
		Posts:        records,
		TotalResults: env.TotalResults,
	}
	if env.Next != nil {
		page.Next = *env.Next
	}
	if env.MoreResultsAvailable != nil {
		page.MoreResultsAvailable = *env.MoreResultsAvailable
	}
	return page, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
