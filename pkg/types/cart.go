package types

import "github.com/shopspring/decimal"

// Cart is the backend's authoritative cart snapshot.
type Cart struct {
	ID         string          `json:"id"`
	CartItems  []CartItem      `json:"cartItems"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CartItem pairs a product variant with a quantity and unit price.
type CartItem struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"productId,omitempty"`
	ProductName      string          `json:"productName"`
	ProductVariantID string          `json:"productVariantId"`
	VariantName      string          `json:"variantName"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Item returns the item with the given id.
func (c *Cart) Item(id string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.CartItems {
		if item.ID == id {
			return item, true
		}
	}
	return CartItem{}, false
}

// AddToCartRequest is the body of POST /api/cart/add.
type AddToCartRequest struct {
	ProductVariantID string `json:"productVariantId" validate:"required"`
	Quantity         int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest is the body of PUT /api/cart-item/{id}.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
