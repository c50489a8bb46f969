package client

import (
	"context"
	"net/http"

	"github.com/pioneersx/pioneersx/pkg/domain"
)

// UpdateProfile saves profile changes and caches the returned profile.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) Result {
	res := c.Execute(ctx, http.MethodPut, "/users/profile", update, nil)
	c.persistUser(ctx, res)
	return res
}

// ChangePassword changes the account password. The cached profile is left
// untouched whatever the response contains.
func (c *Client) ChangePassword(ctx context.Context, change domain.PasswordChange) Result {
	return c.Execute(ctx, http.MethodPut, "/users/change-password", change, nil)
}
