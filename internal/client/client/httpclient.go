package client

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

	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// APIPrefix is appended to the configured base URL.
const APIPrefix = "/api/v1"

var errRetryableStatus = errors.New("retryable status")

// Options configures an HTTPClient. Zero values fall back to the defaults
// noted on each field.
type Options struct {
	BaseURL string
	// Timeout bounds one attempt. Default 15s.
	Timeout time.Duration
	// RetryLimit is the number of retries for idempotent requests.
	RetryLimit int
	// RetryBackoff is the first backoff step; it doubles every retry. Default 300ms.
	RetryBackoff time.Duration
	// RefreshLeeway triggers a proactive token refresh when the access token
	// expires within this window.
	RefreshLeeway time.Duration
	Logger        logging.Logger
	// HTTPClient replaces the default client, mainly for tests.
	HTTPClient *http.Client
}

// HTTPClient talks to the back-office REST API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL       string
	http          *http.Client
	retryLimit    int
	retryBackoff  time.Duration
	refreshLeeway time.Duration
	logger        logging.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time

	refreshGroup singleflight.Group
	now          func() time.Time
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	c := &HTTPClient{
		baseURL:       strings.TrimRight(opts.BaseURL, "/") + APIPrefix,
		http:          opts.HTTPClient,
		retryLimit:    opts.RetryLimit,
		retryBackoff:  opts.RetryBackoff,
		refreshLeeway: opts.RefreshLeeway,
		logger:        opts.Logger,
		now:           time.Now,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.retryBackoff <= 0 {
		c.retryBackoff = 300 * time.Millisecond
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c, nil
}

// request describes one API call. body is sent as-is on every attempt.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	// anonymous requests carry no token and never trigger a refresh.
	anonymous bool
}

func jsonRequest(method, path string, payload any) (*request, error) {
	r := &request{method: method, path: path}
	if payload == nil {
		return r, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	r.body = b
	r.contentType = "application/json"
	return r, nil
}

func (c *HTTPClient) endpoint(r *request) string {
	u := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

// do executes r and decodes the envelope data into out (which may be nil).
func (c *HTTPClient) do(ctx context.Context, r *request, out any) error {
	if !r.anonymous {
		c.refreshIfExpiring(ctx)
	}

	status, body, err := c.roundTrip(ctx, r)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !r.anonymous && c.canRefresh() {
		if err := c.refresh(ctx); err != nil {
			c.logger.Warn(ctx, "token refresh failed", "error", err)
			return c.decode(r, status, body, out)
		}
		status, body, err = c.roundTrip(ctx, r)
		if err != nil {
			return err
		}
	}

	return c.decode(r, status, body, out)
}

// roundTrip sends r, retrying idempotent methods on transport errors and
// on retryable statuses. The last status is returned even when it is an
// error status; only transport failures produce an error.
func (c *HTTPClient) roundTrip(ctx context.Context, r *request) (int, []byte, error) {
	var (
		status int
		body   []byte
	)

	attempt := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r), bytes.NewReader(r.body))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
		if r.contentType != "" {
			req.Header.Set("Content-Type", r.contentType)
		}
		if !r.anonymous {
			if token := c.currentAccessToken(); token != "" {
				req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		status, body = resp.StatusCode, b
		if retryableStatus(status) {
			c.logger.Debug(ctx, "retryable status", "method", r.method, "path", r.path, "status", status)
			return retry.RetryableError(errRetryableStatus)
		}
		return nil
	}

	err := retry.Do(ctx, c.backoff(r.method), attempt)
	switch {
	case err == nil, errors.Is(err, errRetryableStatus):
		return status, body, nil
	case ctx.Err() != nil:
		return 0, nil, ctx.Err()
	default:
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, r.method, r.path, err)
	}
}

func (c *HTTPClient) backoff(method string) retry.Backoff {
	limit := uint64(0)
	if idempotent(method) && c.retryLimit > 0 {
		limit = uint64(c.retryLimit)
	}
	return retry.WithMaxRetries(limit, retry.NewExponential(c.retryBackoff))
}

func (c *HTTPClient) decode(r *request, status int, body []byte, out any) error {
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	jsonErr := json.Unmarshal(body, &env)

	if status < 200 || status >= 300 {
		msg := http.StatusText(status)
		if jsonErr == nil && env.Message != "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
		return &APIError{StatusCode: status, Message: msg, Method: r.method, Path: r.path}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if jsonErr != nil {
		if out == nil {
			return nil
		}
		return fmt.Errorf("%w: %s %s: %v", common.ErrUnexpectedReply, r.method, r.path, jsonErr)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return &APIError{StatusCode: status, Message: msg, Method: r.method, Path: r.path}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrUnexpectedReply, r.method, r.path, err)
	}
	return nil
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodHead, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusRequestEntityTooLarge, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
