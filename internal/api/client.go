package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"scenyx-cli/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrUnauthorized is returned when the backend rejects the access token and a
// refresh did not help.
var ErrUnauthorized = errors.New("unauthorized")

// maxResponseBytes caps how much of a response body is read. Thumbnails are
// small; anything larger is a server bug.
const maxResponseBytes = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	// RefreshToken exchanges the current token pair for a fresh one. Nil
	// disables refresh; 401 responses then fail immediately.
	RefreshToken func(ctx context.Context) (string, error)
	// Retries is the number of additional attempts after the first.
	Retries int
	// Timeout bounds a single attempt, not the whole call.
	Timeout time.Duration

	HTTPClient *http.Client
}

// Client talks to a scenyx-style scenes backend. It is safe for concurrent
// use; Bubble Tea commands call it from many goroutines.
type Client struct {
	base    *url.URL
	http    *http.Client
	refresh func(ctx context.Context) (string, error)
	retries int
	timeout time.Duration
	log     *logger.LogEntry

	mu    sync.RWMutex
	token string

	refreshGroup singleflight.Group
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("missing base URL")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base URL scheme %q", base.Scheme)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		base:    base,
		http:    httpClient,
		refresh: opts.RefreshToken,
		retries: retries,
		timeout: timeout,
		token:   strings.TrimSpace(opts.Token),
		log:     logger.Named("api"),
	}, nil
}

// Token returns the access token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the access token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues one authenticated request per attempt until one succeeds or the
// attempts are exhausted. A 401 triggers a single token refresh shared across
// concurrent callers; the attempt is then repeated with the new token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	var lastErr error
	refreshed := false
	for attempt := 0; attempt <= c.retries; attempt++ {
		data, err := c.doOnce(ctx, method, path, query, body)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, ErrUnauthorized) {
			if refreshed || c.refresh == nil {
				return nil, err
			}
			if rerr := c.refreshNow(ctx); rerr != nil {
				return nil, fmt.Errorf("token refresh: %w", rerr)
			}
			refreshed = true
			// The post-refresh retry does not consume an attempt.
			attempt--
			continue
		}
		c.log.WithFields(logger.Fields{"path": path, "attempt": attempt + 1}).Warnf("request failed: %v", err)
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	ctxRun, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctxRun, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, previewBody(data))
	}
	return data, nil
}

// refreshNow refreshes the access token, collapsing concurrent refreshes into
// one upstream call.
func (c *Client) refreshNow(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		token, err := c.refresh(ctx)
		if err != nil {
			return nil, err
		}
		c.SetToken(token)
		c.log.Info("access token refreshed")
		return nil, nil
	})
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func previewBody(data []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(data))
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}
