package orderdetail

import (
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// Step is one stage of the order tracking bar.
type Step struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
	Error     bool   `json:"error"`
	Disabled  bool   `json:"disabled"`
}

// TrackingSteps derives the five tracking stages from an order's statuses.
func TrackingSteps(order enums.OrderStatus, payment enums.PaymentStatus, delivery enums.DeliveryStatus) []Step {
	paid := payment == enums.PaymentStatusCompleted
	return []Step{
		{
			Label:     "Order Placed",
			Completed: true,
			Current:   order == enums.OrderStatusPending,
		},
		{
			Label:     "Payment",
			Completed: paid,
			Current:   payment == enums.PaymentStatusPending,
			Error:     payment == enums.PaymentStatusFailed,
		},
		{
			Label:     "Processing",
			Completed: delivery.InTransitOrDone(),
			Current:   delivery == enums.DeliveryStatusProcessing,
			Disabled:  !paid,
		},
		{
			Label:     "Shipped",
			Completed: delivery == enums.DeliveryStatusDelivered,
			Current:   delivery == enums.DeliveryStatusShipped,
			Disabled:  !delivery.InTransitOrDone(),
		},
		{
			Label:     "Delivered",
			Completed: delivery == enums.DeliveryStatusDelivered,
			Disabled:  delivery != enums.DeliveryStatusDelivered,
		},
	}
}

// HasAddressInfo reports whether any shipping address field is filled.
func HasAddressInfo(order *types.Order) bool {
	return order != nil && !order.ShippingAddress.IsZero()
}

// DisplayID is the heading identifier: the order number when present, else the id.
func DisplayID(order *types.Order) string {
	if order == nil {
		return ""
	}
	if order.OrderNumber != "" {
		return "#" + order.OrderNumber
	}
	return order.ID
}
