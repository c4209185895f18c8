package checkout

import (
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// DisplayTotals are the figures shown beside the checkout form. They are never sent
// to the backend, which prices the order itself.
type DisplayTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotals sums the items and adds the flat fee of the delivery method.
func ComputeTotals(items []types.CartItem, method enums.DeliveryMethod) DisplayTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	fee := method.Fee()
	return DisplayTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}

// SelectItems keeps the cart items whose ids were requested, in cart order.
func SelectItems(cart *types.Cart, ids []string) []types.CartItem {
	out := []types.CartItem{}
	if cart == nil {
		return out
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, item := range cart.CartItems {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}
