package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const (
	cartPath = "/cart"

	MsgNoItemsSelected = "No items selected for checkout"
	MsgOrderPlaced     = "Order placed successfully!"
	MsgOrderFailed     = "Failed to place order. Please try again."
	msgInitFailed      = "Something went wrong. Please try again."
)

// CartSource is the part of the cart store checkout reads from.
type CartSource interface {
	Refresh(ctx context.Context) error
	Snapshot() *types.Cart
}

// OrderBackend creates orders and hosted payment sessions.
type OrderBackend interface {
	CreateOrder(ctx context.Context, req types.CreateOrderRequest) (*types.Order, error)
	CreatePaymentSession(ctx context.Context, orderID string) (*types.PaymentSession, error)
}

type Authenticator interface {
	Identity(ctx context.Context) (*types.Identity, error)
	Unauthenticated(returnPath string) *pkgerrors.Error
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// Outcome is where the shopper goes after a successful submit.
type Outcome struct {
	OrderID  string `json:"orderId"`
	Redirect string `json:"redirect"`
	// Hosted is set when Redirect points at the payment provider rather than this site.
	Hosted bool `json:"hosted"`
}

// Service drives one visitor's checkout page.
type Service struct {
	cart    CartSource
	orders  OrderBackend
	auth    Authenticator
	notices Notifier
	logg    *logger.Logger

	mu          sync.Mutex
	itemIDs     []string
	form        Form
	initialized bool
}

func NewService(cart CartSource, orders OrderBackend, auth Authenticator, notices Notifier, logg *logger.Logger) (*Service, error) {
	if cart == nil {
		return nil, errors.New("cart source required")
	}
	if orders == nil {
		return nil, errors.New("order backend required")
	}
	if auth == nil {
		return nil, errors.New("authenticator required")
	}
	if notices == nil {
		return nil, errors.New("notifier required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		cart:    cart,
		orders:  orders,
		auth:    auth,
		notices: notices,
		logg:    logg,
		form:    DefaultForm(),
	}, nil
}

// Init prepares the page for the comma-separated item ids carried in the URL.
// Anonymous visitors are sent to login with a return path to the cart.
func (s *Service) Init(ctx context.Context, itemsParam string) (View, error) {
	identity, err := s.auth.Identity(ctx)
	if err != nil {
		return View{}, err
	}
	if identity == nil {
		return View{}, s.auth.Unauthenticated(cartPath)
	}

	if err := s.cart.Refresh(ctx); err != nil {
		s.notices.Error(msgInitFailed)
		return View{}, redirectErr(pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "load cart for checkout"), cartPath)
	}

	ids := ParseItemIDs(itemsParam)
	if len(ids) == 0 {
		s.notices.Error(MsgNoItemsSelected)
		return View{}, redirectErr(pkgerrors.New(pkgerrors.CodeValidation, MsgNoItemsSelected), cartPath)
	}

	s.mu.Lock()
	s.itemIDs = ids
	s.form = DefaultForm()
	s.initialized = true
	s.mu.Unlock()
	return s.View(), nil
}

// Submit validates the form and places the order. Nothing is sent when the form is
// incomplete or no items are selected. For every method but cash the returned outcome
// carries the hosted payment URL.
func (s *Service) Submit(ctx context.Context, form Form) (Outcome, error) {
	if fieldErrs := form.Validate(); fieldErrs != nil {
		if missing := fieldErrs.Missing(); len(missing) > 0 {
			s.notices.Error("Please fill in all required fields: " + strings.Join(missing, ", "))
		} else {
			s.notices.Error("Please check the checkout form")
		}
		return Outcome{}, pkgerrors.New(pkgerrors.CodeValidation, "checkout form incomplete").WithDetails(fieldErrs)
	}

	s.mu.Lock()
	s.form = form
	ids := append([]string(nil), s.itemIDs...)
	s.mu.Unlock()

	if len(ids) == 0 {
		s.notices.Error(MsgNoItemsSelected)
		return Outcome{}, pkgerrors.New(pkgerrors.CodeValidation, MsgNoItemsSelected)
	}

	order, err := s.orders.CreateOrder(ctx, form.Request(ids))
	if err != nil {
		return Outcome{}, s.fail(ctx, err, "checkout.create_order_failed")
	}

	if !form.PaymentMethod.RequiresHostedSession() {
		s.notices.Success(MsgOrderPlaced)
		return Outcome{OrderID: order.ID, Redirect: fmt.Sprintf("/orders/%s", order.ID)}, nil
	}

	session, err := s.orders.CreatePaymentSession(ctx, order.ID)
	if err != nil {
		return Outcome{}, s.fail(ctx, err, "checkout.payment_session_failed")
	}
	return Outcome{OrderID: order.ID, Redirect: session.SessionURL, Hosted: true}, nil
}

func (s *Service) fail(ctx context.Context, err error, event string) error {
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), event)
	s.notices.Error(MsgOrderFailed)
	return err
}

// Reset returns the page to its uninitialised state with a default form.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemIDs = nil
	s.form = DefaultForm()
	s.initialized = false
}

// ItemIDs returns the ids checkout was initialised with.
func (s *Service) ItemIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.itemIDs...)
}

// ParseItemIDs splits the items query value, dropping blanks.
func ParseItemIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// SubmitLabel is the caption of the submit button for a payment method.
func SubmitLabel(method enums.PaymentMethod) string {
	if method.RequiresHostedSession() {
		return "Proceed to Payment"
	}
	return "Place Order"
}

func redirectErr(err *pkgerrors.Error, target string) *pkgerrors.Error {
	return err.WithDetails(map[string]any{"redirect": target})
}
