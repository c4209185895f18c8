package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

func (c *Client) Product(ctx context.Context, id string) (*types.Product, error) {
	if err := requireID(id, "product id"); err != nil {
		return nil, err
	}
	var product types.Product
	if err := c.do(ctx, call{op: "product.get", method: http.MethodGet, path: "/api/product/" + escape(id)}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ProductVariants(ctx context.Context, productID string) ([]types.ProductVariant, error) {
	if err := requireID(productID, "product id"); err != nil {
		return nil, err
	}
	variants := []types.ProductVariant{}
	err := c.do(ctx, call{op: "product.variants", method: http.MethodGet, path: "/api/product/" + escape(productID) + "/variants"}, &variants)
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (c *Client) Products(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error) {
	var out types.Page[types.Product]
	if err := c.do(ctx, call{op: "product.list", method: http.MethodGet, path: "/api/product/all", query: page.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchNames returns product name suggestions for a partial query.
func (c *Client) SearchNames(ctx context.Context, name string) ([]string, error) {
	query := url.Values{}
	query.Set("name", strings.TrimSpace(name))
	names := []string{}
	if err := c.do(ctx, call{op: "product.search_name", method: http.MethodGet, path: "/api/product/search-name", query: query}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SearchProducts runs the paginated full search.
func (c *Client) SearchProducts(ctx context.Context, filter types.ProductFilter) (*types.Page[types.Product], error) {
	var out types.Page[types.Product]
	if err := c.do(ctx, call{op: "product.search", method: http.MethodGet, path: "/api/product/search", query: filter.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
