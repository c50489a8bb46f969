package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pioneersx/pioneersx/pkg/domain"
	"github.com/pioneersx/pioneersx/pkg/session"
)

// Register creates an account. On success the returned token and user are
// persisted.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) Result {
	res := c.Execute(ctx, http.MethodPost, "/auth/register", req, nil)
	c.persistAuth(ctx, res)
	return res
}

// Login authenticates with email and password. On success the returned
// token and user are persisted.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	res := c.Execute(ctx, http.MethodPost, "/auth/login", domain.LoginRequest{Email: email, Password: password}, nil)
	c.persistAuth(ctx, res)
	return res
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) Result {
	return c.Execute(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using the token from the reset mail.
func (c *Client) ResetPassword(ctx context.Context, token, password string) Result {
	return c.Execute(ctx, http.MethodPut, "/auth/reset-password/"+url.PathEscape(token), map[string]string{"password": password}, nil)
}

// VerifyEmail confirms an address using the token from the verification mail.
func (c *Client) VerifyEmail(ctx context.Context, token string) Result {
	return c.Execute(ctx, http.MethodGet, "/auth/verify-email/"+url.PathEscape(token), nil, nil)
}

// GetMe fetches the current profile and caches it in the session.
func (c *Client) GetMe(ctx context.Context) Result {
	res := c.Execute(ctx, http.MethodGet, "/auth/me", nil, nil)
	c.persistUser(ctx, res)
	return res
}

// Logout clears the stored session. No request is sent.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsLoggedIn reports whether both a token and a profile are stored.
// Store errors count as logged out.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	ok, err := session.LoggedIn(ctx, c.store)
	if err != nil {
		c.log.Warn("read session", zap.Error(err))
		return false
	}
	return ok
}

// Token returns the stored bearer token, or "" when logged out.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.store.Token(ctx)
}

// CurrentUser decodes the cached profile. It returns nil, nil when no
// session is stored; a profile without a token counts as no session.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	tok, err := c.store.Token(ctx)
	if err != nil || tok == "" {
		return nil, err
	}
	raw, err := c.store.User(ctx)
	if err != nil || raw == nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil //nolint:nilerr // an unreadable profile is treated as absent
	}
	return &u, nil
}

// persistAuth stores data.token and data.user from a successful login or
// registration. Each is written only when present.
func (c *Client) persistAuth(ctx context.Context, res Result) {
	if !res.Success || !truthy(res.Data) {
		return
	}
	var payload struct {
		Token json.RawMessage `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(res.Data, &payload); err != nil {
		return
	}
	var token string
	if json.Unmarshal(payload.Token, &token) == nil && token != "" {
		if err := c.store.SetToken(ctx, token); err != nil {
			c.log.Warn("persist session token", zap.Error(err))
		}
	}
	if truthy(payload.User) {
		if err := c.store.SetUser(ctx, payload.User); err != nil {
			c.log.Warn("persist session user", zap.Error(err))
		}
	}
}

// persistUser stores the whole data block of a successful profile response.
func (c *Client) persistUser(ctx context.Context, res Result) {
	if !res.Success || !truthy(res.Data) {
		return
	}
	if err := c.store.SetUser(ctx, res.Data); err != nil {
		c.log.Warn("persist session user", zap.Error(err))
	}
}
