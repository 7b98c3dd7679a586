package t212

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// LiveURL is the base URL for real-money accounts.
	LiveURL = "https://live.trading212.com/api/v0"
	// DemoURL is the base URL for practice accounts.
	DemoURL = "https://demo.trading212.com/api/v0"
)

// BaseURL maps an environment name to its API base URL.
func BaseURL(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "live":
		return LiveURL, nil
	case "demo", "practice":
		return DemoURL, nil
	default:
		return "", fmt.Errorf("unknown environment %q (want live|demo)", env)
	}
}

// Client talks to the Trading 212 equity REST API. All calls block until the
// response arrives or the client timeout elapses; the client never retries.
type Client struct {
	baseURL    string
	auth       *BasicAuth
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseURL points the client at an arbitrary base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLogger attaches a logger. The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a client for the given environment ("live" or "demo").
func NewClient(key, secret, env string, opts ...Option) (*Client, error) {
	auth, err := NewBasicAuth(key, secret)
	if err != nil {
		return nil, err
	}
	baseURL, err := BaseURL(env)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    baseURL,
		auth:       auth,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do issues a single request and returns the response body. Non-2xx statuses
// are mapped onto the error taxonomy: 401/403 -> AuthError, 429 ->
// RateLimitError, anything else -> APIError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.Path += path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.auth.Header())
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("api request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &AuthError{Status: resp.StatusCode, Message: msg}
		case http.StatusTooManyRequests:
			return nil, &RateLimitError{RetryAfter: resp.Header.Get("Retry-After"), Message: msg}
		default:
			return nil, &APIError{Status: resp.StatusCode, Message: msg}
		}
	}
	return respBody, nil
}

// get fetches path and decodes the JSON body into out, returning the raw
// bytes so callers can persist fields the typed model does not cover.
func (c *Client) get(ctx context.Context, path string, out any) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return body, nil
}

// post sends a JSON body to path and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return body, nil
}
