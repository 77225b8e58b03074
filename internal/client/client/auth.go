package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	loginPath   = "accounts/login"
	refreshPath = "accounts/refresh-token"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	r, err := jsonRequest(http.MethodPost, loginPath, creds)
	if err != nil {
		return nil, err
	}
	r.anonymous = true

	var resp models.AuthResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if resp.Tokens.AccessToken == "" {
		return nil, fmt.Errorf("login: %w", ErrNoTokens)
	}

	c.SetTokens(resp.Tokens)
	return &resp, nil
}

// SetTokens installs a token pair. The access token expiry is read from its
// exp claim, falling back to ExpiresIn seconds.
func (c *HTTPClient) SetTokens(tokens models.Tokens) {
	expiresAt := tokenExpiry(tokens.AccessToken)
	if expiresAt.IsZero() && tokens.ExpiresIn > 0 {
		expiresAt = c.now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		c.refreshToken = tokens.RefreshToken
	}
	c.expiresAt = expiresAt
}

func (c *HTTPClient) ClearTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
	c.expiresAt = time.Time{}
}

func (c *HTTPClient) HasTokens() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

func (c *HTTPClient) currentAccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) canRefresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken != ""
}

func (c *HTTPClient) refreshIfExpiring(ctx context.Context) {
	c.mu.RLock()
	expiresAt := c.expiresAt
	hasRefresh := c.refreshToken != ""
	c.mu.RUnlock()

	if !hasRefresh || expiresAt.IsZero() || c.refreshLeeway <= 0 {
		return
	}
	if c.now().Add(c.refreshLeeway).Before(expiresAt) {
		return
	}
	if err := c.refresh(ctx); err != nil {
		c.logger.Warn(ctx, "proactive token refresh failed", "error", err)
	}
}

// refresh exchanges the refresh token for a new pair. Concurrent callers
// share one request.
func (c *HTTPClient) refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		c.mu.RLock()
		rt := c.refreshToken
		c.mu.RUnlock()
		if rt == "" {
			return nil, ErrNoTokens
		}

		r, err := jsonRequest(http.MethodPost, refreshPath, map[string]string{"refreshToken": rt})
		if err != nil {
			return nil, err
		}
		r.anonymous = true

		status, body, err := c.roundTrip(ctx, r)
		if err != nil {
			return nil, err
		}

		var tokens models.Tokens
		if err := c.decode(r, status, body, &tokens); err != nil {
			return nil, err
		}
		if tokens.AccessToken == "" {
			return nil, ErrNoTokens
		}

		c.SetTokens(tokens)
		c.logger.Debug(ctx, "access token refreshed")
		return nil, nil
	})
	return err
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend verifies tokens, the client only needs to know when to refresh.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
