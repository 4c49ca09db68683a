package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxBodySize caps how much of an upstream response is read (10MB).
const maxBodySize = 10 * 1024 * 1024

var (
	// ErrUnavailable covers connection failures and non-2xx responses.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrDecode covers bodies that are not the expected JSON.
	ErrDecode = errors.New("upstream response undecodable")
)

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error { return ErrUnavailable }

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RPS limits outbound requests per second. Zero means unlimited.
	RPS int
}

// Client performs single JSON GETs against one upstream. It never retries
// or caches.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RPS)), 1)
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    limiter,
	}
}

// GetJSON fetches baseURL+path and decodes the body into target.
// Failures wrap ErrUnavailable or ErrDecode.
func (c *Client) GetJSON(ctx context.Context, path string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, waitError(ctx, err))
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// waitError keeps the context cause of a failed limiter wait in the chain.
// The limiter refuses early when the next token lands past the deadline.
func waitError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}
