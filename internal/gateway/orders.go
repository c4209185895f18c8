package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const orderPath = "/api/order"

func (c *Client) CreateOrder(ctx context.Context, req types.CreateOrderRequest) (*types.Order, error) {
	var order types.Order
	if err := c.do(ctx, call{op: "order.create", method: http.MethodPost, path: orderPath, body: req}, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend returned an order without id")
	}
	return &order, nil
}

// CreatePaymentSession asks the backend for a hosted payment page for the order.
func (c *Client) CreatePaymentSession(ctx context.Context, orderID string) (*types.PaymentSession, error) {
	if err := requireID(orderID, "order id"); err != nil {
		return nil, err
	}
	var session types.PaymentSession
	err := c.do(ctx, call{op: "order.payment_session", method: http.MethodPost, path: orderPath + "/" + escape(orderID) + "/stripe-session"}, &session)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(session.SessionURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend returned an empty payment session url")
	}
	return &session, nil
}

// VerifyPayment reports whether the hosted payment session settled.
func (c *Client) VerifyPayment(ctx context.Context, sessionID string) (bool, error) {
	if err := requireID(sessionID, "payment session id"); err != nil {
		return false, err
	}
	query := url.Values{}
	query.Set("sessionId", strings.TrimSpace(sessionID))
	var ok bool
	if err := c.do(ctx, call{op: "order.verify_payment", method: http.MethodGet, path: orderPath + "/verify-payment", query: query}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (c *Client) Order(ctx context.Context, id string) (*types.Order, error) {
	if err := requireID(id, "order id"); err != nil {
		return nil, err
	}
	var order types.Order
	if err := c.do(ctx, call{op: "order.get", method: http.MethodGet, path: orderPath + "/" + escape(id)}, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return &order, nil
}

func (c *Client) MyOrders(ctx context.Context, page pagination.Params) (*types.Page[types.Order], error) {
	var out types.Page[types.Order]
	if err := c.do(ctx, call{op: "order.mine", method: http.MethodGet, path: orderPath + "/my-orders", query: page.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AllOrders(ctx context.Context, page pagination.Params) (*types.Page[types.Order], error) {
	var out types.Page[types.Order]
	if err := c.do(ctx, call{op: "order.all", method: http.MethodGet, path: orderPath + "/all", query: page.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrderStatusCounts(ctx context.Context) (types.StatusCounts, error) {
	counts := types.StatusCounts{}
	if err := c.do(ctx, call{op: "order.status_counts", method: http.MethodGet, path: orderPath + "/status-counts"}, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, update types.OrderStatusUpdate) (*types.Order, error) {
	if err := requireID(id, "order id"); err != nil {
		return nil, err
	}
	var order types.Order
	err := c.do(ctx, call{op: "order.update_status", method: http.MethodPut, path: orderPath + "/" + escape(id) + "/status", body: update}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
