package gateway

import (
	"context"
	"net/http"

	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// Me returns the identity behind the access token on ctx.
func (c *Client) Me(ctx context.Context) (*types.Identity, error) {
	var identity types.Identity
	if err := c.do(ctx, call{op: "auth.me", method: http.MethodGet, path: "/api/auth/me"}, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// UpdateMyInfo changes the signed-in account's own profile.
func (c *Client) UpdateMyInfo(ctx context.Context, update types.UserUpdate) (*types.Identity, error) {
	var identity types.Identity
	err := c.do(ctx, call{op: "user.update_me", method: http.MethodPut, path: "/api/user/update-my-info", body: update}, &identity)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
