package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// ErrStale is returned when a response arrives after the caller stopped waiting for it.
var ErrStale = errors.New("orders: response superseded")

const myOrdersPath = "/orders"

// Store is one visitor's order state: their order list, the admin listings, and the
// order currently opened in a detail view.
type Store struct {
	backend Backend
	auth    Authenticator
	notices Notifier
	logg    *logger.Logger

	mu         sync.Mutex
	mine       ListView
	all        ListView
	counts     types.StatusCounts
	selected   *types.Order
	selectedID string
	generation uint64
	closed     bool
}

func NewStore(backend Backend, auth Authenticator, notices Notifier, logg *logger.Logger) (*Store, error) {
	if backend == nil {
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
	return &Store{backend: backend, auth: auth, notices: notices, logg: logg}, nil
}

// MyOrders loads a page of the signed-in visitor's orders, newest first by default.
func (s *Store) MyOrders(ctx context.Context, query ListQuery) (ListView, error) {
	if err := s.requireIdentity(ctx, myOrdersPath); err != nil {
		return ListView{}, err
	}
	params := query.Params()
	page, err := s.backend.MyOrders(ctx, params)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.list_failed")
		return ListView{}, err
	}
	view := newListView(page, params)
	s.mu.Lock()
	if !s.closed {
		s.mine = view
	}
	s.mu.Unlock()
	return view, nil
}

// Select fetches one order and makes it the selected order. If the selection was
// cleared or replaced while the request was in flight the result is dropped and
// ErrStale returned.
func (s *Store) Select(ctx context.Context, id string) (*types.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.selectedID = id
	s.selected = nil
	s.mu.Unlock()

	order, err := s.backend.Order(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return nil, ErrStale
	}
	if err != nil {
		s.selectedID = ""
		return nil, err
	}
	s.selected = order
	return order, nil
}

// ClearSelected forgets the selected order and invalidates any fetch in flight.
func (s *Store) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.selected = nil
	s.selectedID = ""
}

// Selected returns the selected order, or nil.
func (s *Store) Selected() *types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Mine returns the last loaded page of the visitor's orders.
func (s *Store) Mine() ListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mine
}

// Reset drops the listings and the selected order but keeps the store usable.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.selected = nil
	s.selectedID = ""
	s.mine = ListView{}
	s.all = ListView{}
	s.counts = nil
}

// Close drops all state; later responses are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.selected = nil
	s.selectedID = ""
	s.mine = ListView{}
	s.all = ListView{}
	s.counts = nil
}

func (s *Store) requireIdentity(ctx context.Context, returnPath string) error {
	identity, err := s.auth.Identity(ctx)
	if err != nil {
		return err
	}
	if identity == nil {
		return s.auth.Unauthenticated(returnPath)
	}
	return nil
}

// OrderPath is the detail view URL of an order.
func OrderPath(id string) string {
	return fmt.Sprintf("/orders/%s", id)
}
