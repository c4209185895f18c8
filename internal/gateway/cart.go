package gateway

import (
	"context"
	"net/http"

	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// MyCart fetches the authoritative cart of the signed-in shopper.
func (c *Client) MyCart(ctx context.Context) (*types.Cart, error) {
	var cart types.Cart
	if err := c.do(ctx, call{op: "cart.get", method: http.MethodGet, path: "/api/cart/my-cart"}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, req types.AddToCartRequest) error {
	return c.do(ctx, call{op: "cart.add", method: http.MethodPost, path: "/api/cart/add", body: req}, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	if err := requireID(itemID, "cart item id"); err != nil {
		return err
	}
	return c.do(ctx, call{
		op:     "cart.update_item",
		method: http.MethodPut,
		path:   "/api/cart-item/" + escape(itemID),
		body:   types.UpdateCartItemRequest{Quantity: quantity},
	}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	if err := requireID(itemID, "cart item id"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "cart.remove_item", method: http.MethodDelete, path: "/api/cart-item/" + escape(itemID)}, nil)
}
