package orders

import (
	"context"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// Backend is the order surface of the gateway.
type Backend interface {
	Order(ctx context.Context, id string) (*types.Order, error)
	MyOrders(ctx context.Context, page pagination.Params) (*types.Page[types.Order], error)
	AllOrders(ctx context.Context, page pagination.Params) (*types.Page[types.Order], error)
	OrderStatusCounts(ctx context.Context) (types.StatusCounts, error)
	UpdateOrderStatus(ctx context.Context, id string, update types.OrderStatusUpdate) (*types.Order, error)
	VerifyPayment(ctx context.Context, sessionID string) (bool, error)
}

type Authenticator interface {
	Identity(ctx context.Context) (*types.Identity, error)
	Unauthenticated(returnPath string) *pkgerrors.Error
}

type Notifier interface {
	Success(message string)
	Error(message string)
}
