package types

import (
	"time"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a placed order. Item prices and names are frozen at purchase.
type Order struct {
	ID             string               `json:"id"`
	OrderNumber    string               `json:"orderNumber,omitempty"`
	CustomerName   string               `json:"customerName,omitempty"`
	OrderStatus    enums.OrderStatus    `json:"orderStatus"`
	PaymentStatus  enums.PaymentStatus  `json:"paymentStatus"`
	DeliveryStatus enums.DeliveryStatus `json:"deliveryStatus"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod"`
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DeliveryFee    decimal.Decimal      `json:"deliveryFee"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	OrderItems     []OrderItem          `json:"orderItems"`
	CreatedAt      time.Time            `json:"createdAt"`

	ShippingAddress
}

// OrderItem is a frozen line of an order.
type OrderItem struct {
	ID                  string          `json:"id"`
	ProductName         string          `json:"productName"`
	ProductVariantName  string          `json:"productVariantName,omitempty"`
	ProductVariantSize  string          `json:"productVariantSize,omitempty"`
	ProductVariantScent string          `json:"productVariantScent,omitempty"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
}

// CreateOrderRequest is the checkout body sent to POST /api/order.
type CreateOrderRequest struct {
	CartItemIDs    []string             `json:"cartItemIds"`
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod"`

	ShippingAddress
}

// PaymentSession is the hosted payment page issued for an order.
type PaymentSession struct {
	SessionURL string `json:"sessionUrl"`
	SessionID  string `json:"sessionId,omitempty"`
}

// OrderStatusUpdate is the admin body of PUT /api/order/{id}/status. Empty fields are left as is.
type OrderStatusUpdate struct {
	OrderStatus    enums.OrderStatus    `json:"orderStatus,omitempty"`
	PaymentStatus  enums.PaymentStatus  `json:"paymentStatus,omitempty"`
	DeliveryStatus enums.DeliveryStatus `json:"deliveryStatus,omitempty"`
}

// StatusCounts maps order status to the number of orders in it.
type StatusCounts map[enums.OrderStatus]int64
