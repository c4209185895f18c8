package cart

import (
	"context"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// Backend is the cart surface of the gateway.
type Backend interface {
	MyCart(ctx context.Context) (*types.Cart, error)
	AddToCart(ctx context.Context, req types.AddToCartRequest) error
	UpdateCartItem(ctx context.Context, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, itemID string) error
}

// Authenticator resolves the visitor's identity.
type Authenticator interface {
	Identity(ctx context.Context) (*types.Identity, error)
	Unauthenticated(returnPath string) *pkgerrors.Error
}

// Notifier receives toast messages for the visitor.
type Notifier interface {
	Success(message string)
	Error(message string)
}
