package orderdetail

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/angelmondragon/scent-storefront/internal/orders"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// State is the phase of the order detail view.
type State string

const (
	StateIdle            State = "idle"
	StateCheckingAuth    State = "checking_auth"
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StateSuccess         State = "success"
	StateForbidden       State = "forbidden"
	StateNotFound        State = "not_found"
)

const ordersPath = "/orders"

type Authenticator interface {
	Identity(ctx context.Context) (*types.Identity, error)
	LoginRedirect(returnPath string) string
}

// Selector owns the shared selected order.
type Selector interface {
	Select(ctx context.Context, id string) (*types.Order, error)
	ClearSelected()
}

// View is what the order detail page renders.
type View struct {
	State          State        `json:"state"`
	OrderID        string       `json:"orderId,omitempty"`
	Order          *types.Order `json:"order,omitempty"`
	DisplayID      string       `json:"displayId,omitempty"`
	Steps          []Step       `json:"steps,omitempty"`
	HasAddressInfo bool         `json:"hasAddressInfo"`
	LoginRedirect  string       `json:"loginRedirect,omitempty"`
	BackTo         string       `json:"backTo,omitempty"`
}

// Viewer runs the detail view state machine for one visitor.
type Viewer struct {
	auth   Authenticator
	orders Selector
	logg   *logger.Logger

	mu   sync.Mutex
	view View
	gen  uint64
}

func NewViewer(auth Authenticator, orders Selector, logg *logger.Logger) (*Viewer, error) {
	if auth == nil {
		return nil, errors.New("authenticator required")
	}
	if orders == nil {
		return nil, errors.New("order selector required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Viewer{auth: auth, orders: orders, logg: logg, view: View{State: StateIdle}}, nil
}

// Open shows the order with the given id: checking auth, then loading, then one of
// success, forbidden or not found. A result that arrives after Leave or another Open
// leaves the newer state in place.
func (v *Viewer) Open(ctx context.Context, id string) View {
	id = strings.TrimSpace(id)
	gen := v.transition(0, View{State: StateCheckingAuth, OrderID: id})

	identity, err := v.auth.Identity(ctx)
	if err != nil {
		v.logg.Warn(v.logg.WithField(ctx, "error", err.Error()), "orderdetail.auth_check_failed")
	}
	if identity == nil {
		v.transition(gen, View{
			State:         StateUnauthenticated,
			OrderID:       id,
			LoginRedirect: v.auth.LoginRedirect(orders.OrderPath(id)),
		})
		return v.Current()
	}

	v.transition(gen, View{State: StateLoading, OrderID: id})
	order, err := v.orders.Select(ctx, id)
	switch {
	case errors.Is(err, orders.ErrStale):
	case err != nil || order == nil || order.ID == "":
		state := StateNotFound
		if pkgerrors.IsForbidden(err) {
			state = StateForbidden
		}
		v.transition(gen, View{State: state, OrderID: id, BackTo: ordersPath})
	default:
		v.transition(gen, View{
			State:          StateSuccess,
			OrderID:        id,
			Order:          order,
			DisplayID:      DisplayID(order),
			Steps:          TrackingSteps(order.OrderStatus, order.PaymentStatus, order.DeliveryStatus),
			HasAddressInfo: HasAddressInfo(order),
			BackTo:         ordersPath,
		})
	}
	return v.Current()
}

// Leave closes the view and clears the shared selected order.
func (v *Viewer) Leave() {
	v.mu.Lock()
	v.gen++
	v.view = View{State: StateIdle}
	v.mu.Unlock()
	v.orders.ClearSelected()
}

// Current returns the latest view.
func (v *Viewer) Current() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view
}

// transition applies next when gen is still current. A zero gen starts a new visit and
// returns its generation.
func (v *Viewer) transition(gen uint64, next View) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == 0 {
		v.gen++
		v.view = next
		return v.gen
	}
	if gen == v.gen {
		v.view = next
	}
	return v.gen
}
