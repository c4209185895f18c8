package gateway

import (
	"context"
	"net/http"

	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const variantPath = "/api/product-variant"

func (c *Client) Variant(ctx context.Context, id string) (*types.ProductVariant, error) {
	if err := requireID(id, "variant id"); err != nil {
		return nil, err
	}
	var variant types.ProductVariant
	if err := c.do(ctx, call{op: "variant.get", method: http.MethodGet, path: variantPath + "/" + escape(id)}, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (c *Client) CreateVariant(ctx context.Context, input types.VariantInput) (*types.ProductVariant, error) {
	var variant types.ProductVariant
	if err := c.do(ctx, call{op: "variant.create", method: http.MethodPost, path: variantPath, body: input}, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (c *Client) UpdateVariant(ctx context.Context, id string, input types.VariantInput) (*types.ProductVariant, error) {
	if err := requireID(id, "variant id"); err != nil {
		return nil, err
	}
	var variant types.ProductVariant
	if err := c.do(ctx, call{op: "variant.update", method: http.MethodPut, path: variantPath + "/" + escape(id), body: input}, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (c *Client) DeleteVariant(ctx context.Context, id string) error {
	if err := requireID(id, "variant id"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "variant.delete", method: http.MethodDelete, path: variantPath + "/" + escape(id)}, nil)
}
