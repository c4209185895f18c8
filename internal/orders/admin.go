package orders

import (
	"context"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"golang.org/x/sync/errgroup"
)

const (
	adminOrdersPath = "/admin/orders"

	MsgStatusUpdated      = "Order status updated successfully"
	msgStatusUpdateFailed = "Failed to update order status"
)

// Dashboard is the admin orders landing view.
type Dashboard struct {
	Orders ListView           `json:"orders"`
	Counts types.StatusCounts `json:"counts"`
}

// AllOrders loads a page of every customer's orders.
func (s *Store) AllOrders(ctx context.Context, query ListQuery) (ListView, error) {
	if err := s.requireIdentity(ctx, adminOrdersPath); err != nil {
		return ListView{}, err
	}
	params := query.Params()
	page, err := s.backend.AllOrders(ctx, params)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.admin_list_failed")
		return ListView{}, err
	}
	view := newListView(page, params)
	s.mu.Lock()
	if !s.closed {
		s.all = view
	}
	s.mu.Unlock()
	return view, nil
}

// StatusCounts loads the number of orders per order status.
func (s *Store) StatusCounts(ctx context.Context) (types.StatusCounts, error) {
	if err := s.requireIdentity(ctx, adminOrdersPath); err != nil {
		return nil, err
	}
	counts, err := s.backend.OrderStatusCounts(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.status_counts_failed")
		return nil, err
	}
	if counts == nil {
		counts = types.StatusCounts{}
	}
	s.mu.Lock()
	if !s.closed {
		s.counts = counts
	}
	s.mu.Unlock()
	return counts, nil
}

// Dashboard fetches the order page and the status counts together.
func (s *Store) Dashboard(ctx context.Context, query ListQuery) (Dashboard, error) {
	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view, err := s.AllOrders(gctx, query)
		out.Orders = view
		return err
	})
	g.Go(func() error {
		counts, err := s.StatusCounts(gctx)
		out.Counts = counts
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}

// UpdateStatus changes an order's statuses and patches the cached listing and
// selected order with the backend's answer.
func (s *Store) UpdateStatus(ctx context.Context, id string, update types.OrderStatusUpdate) (*types.Order, error) {
	if err := s.requireIdentity(ctx, adminOrdersPath); err != nil {
		return nil, err
	}
	if update.OrderStatus == "" && update.PaymentStatus == "" && update.DeliveryStatus == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one status required")
	}
	if (update.OrderStatus != "" && !update.OrderStatus.IsValid()) ||
		(update.PaymentStatus != "" && !update.PaymentStatus.IsValid()) ||
		(update.DeliveryStatus != "" && !update.DeliveryStatus.IsValid()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status value")
	}

	order, err := s.backend.UpdateOrderStatus(ctx, id, update)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.status_update_failed")
		s.notices.Error(pkgerrors.UserMessage(err, msgStatusUpdateFailed))
		return nil, err
	}
	s.notices.Success(MsgStatusUpdated)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || order == nil {
		return order, nil
	}
	for i := range s.all.Orders {
		if s.all.Orders[i].ID == order.ID {
			s.all.Orders[i] = *order
		}
	}
	if s.selected != nil && s.selected.ID == order.ID {
		s.selected = order
	}
	return order, nil
}
