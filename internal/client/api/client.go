package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/hirepad/internal/common"
	"github.com/dmitrijs2005/hirepad/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxResponseBody = 4 << 20

// TokenSource yields the bearer token to attach, or "" for none.
type TokenSource func() string

// UnauthorizedFunc is told which token the backend just rejected.
type UnauthorizedFunc func(token string)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit makes the client wait for a token before every request.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client talks JSON over HTTP to the backend rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger

	mu             sync.RWMutex
	tokenSource    TokenSource
	onUnauthorized UnauthorizedFunc
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource installs the provider consulted on every request.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenSource = ts
}

// OnUnauthorized registers the listener for 401 responses.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) token() string {
	c.mu.RLock()
	ts := c.tokenSource
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts()
}

func (c *Client) notifyUnauthorized(token string) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(token)
	}
}

// Do sends one request. path is relative to the base URL and may carry a
// query string. body, when non-nil, is sent as JSON; out, when non-nil,
// receives the decoded 2xx response.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// doAnonymous skips the bearer token and the unauthorized listener. Used
// for the credential exchange itself, where a 401 means "wrong password"
// and says nothing about the current session.
func (c *Client) doAnonymous(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authorized bool) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	var token string
	if authorized {
		token = c.token()
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
		}
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	log.Debug(ctx, "response", "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{
				Kind:       KindServer,
				StatusCode: resp.StatusCode,
				Message:    "malformed response body",
				Err:        err,
			}
		}
		return nil
	}

	apiErr := responseError(resp.StatusCode, raw)
	if apiErr.Kind == KindUnauthorized && authorized {
		c.notifyUnauthorized(token)
	}
	return apiErr
}

func responseError(status int, raw []byte) *Error {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	_ = json.Unmarshal(raw, &envelope)

	e := &Error{
		Kind:       KindServer,
		StatusCode: status,
		Detail:     envelope.Detail,
		Message:    fmt.Sprintf("request failed with status code %d", status),
	}

	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusUnprocessableEntity:
		var fields []FieldError
		if err := json.Unmarshal(envelope.Detail, &fields); err == nil {
			e.Kind = KindValidation
			e.Fields = fields
		}
	}
	return e
}
