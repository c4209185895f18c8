package gateway

import (
	"context"
	"net/http"

	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const userPath = "/api/user"

func (c *Client) Users(ctx context.Context, page pagination.Params) (*types.Page[types.User], error) {
	var out types.Page[types.User]
	if err := c.do(ctx, call{op: "user.list", method: http.MethodGet, path: userPath + "/all", query: page.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) User(ctx context.Context, id string) (*types.User, error) {
	if err := requireID(id, "user id"); err != nil {
		return nil, err
	}
	var user types.User
	if err := c.do(ctx, call{op: "user.get", method: http.MethodGet, path: userPath + "/" + escape(id)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, update types.UserUpdate) error {
	if err := requireID(id, "user id"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "user.update", method: http.MethodPut, path: userPath + "/" + escape(id), body: update}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := requireID(id, "user id"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "user.delete", method: http.MethodDelete, path: userPath + "/" + escape(id)}, nil)
}

func (c *Client) CreateUser(ctx context.Context, user types.NewUser) error {
	return c.do(ctx, call{op: "user.create", method: http.MethodPost, path: userPath, body: user}, nil)
}
