package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	// CartPath is the view the cart's login redirects return to.
	CartPath = "/cart"

	MsgSelectAtLeastOne = "Please select at least one item to checkout"
	msgLoginToAdd       = "Please login to add items to your cart"
	msgLoginToUpdate    = "Please login to update your cart"
	msgLoginToRemove    = "Please login to remove items from your cart"
)

// Store holds one visitor's cart snapshot and the client-only selection map.
// Every backend response replaces the snapshot in arrival order; the client never
// recomputes authoritative totals.
type Store struct {
	backend Backend
	auth    Authenticator
	notices Notifier
	logg    *logger.Logger

	mu       sync.Mutex
	cart     *types.Cart
	selected map[string]bool
	released bool
}

func NewStore(backend Backend, auth Authenticator, notices Notifier, logg *logger.Logger) (*Store, error) {
	if backend == nil {
		return nil, errors.New("cart backend required")
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
	return &Store{
		backend:  backend,
		auth:     auth,
		notices:  notices,
		logg:     logg,
		selected: map[string]bool{},
	}, nil
}

// Load fetches the cart for a signed-in visitor. Anonymous visitors get an
// UNAUTHORIZED error carrying the login redirect for returnPath.
func (s *Store) Load(ctx context.Context, returnPath string) (View, error) {
	if err := s.requireIdentity(ctx, returnPath, ""); err != nil {
		return View{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// Refresh re-requests the canonical cart and applies it.
func (s *Store) Refresh(ctx context.Context) error {
	cart, err := s.backend.MyCart(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.refresh_failed")
		return err
	}
	s.apply(cart)
	return nil
}

// apply replaces the snapshot and selects every item.
func (s *Store) apply(cart *types.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.cart = cart
	s.selected = make(map[string]bool, len(cart.CartItems))
	for _, item := range cart.CartItems {
		s.selected[item.ID] = true
	}
}

// Add puts a variant into the cart and re-fetches it.
func (s *Store) Add(ctx context.Context, req types.AddToCartRequest, returnPath string) (View, error) {
	if err := s.requireIdentity(ctx, returnPath, msgLoginToAdd); err != nil {
		return View{}, err
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if err := s.backend.AddToCart(ctx, req); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to add item to cart"))
		return View{}, err
	}
	s.notices.Success("Added to cart")
	if err := s.Refresh(ctx); err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// ChangeQuantity moves an item's quantity by delta, never below one. When the clamped
// quantity equals the current one nothing is sent.
func (s *Store) ChangeQuantity(ctx context.Context, itemID string, delta int, returnPath string) (View, error) {
	item, err := s.item(itemID)
	if err != nil {
		return View{}, err
	}
	return s.setQuantity(ctx, item, item.Quantity+delta, returnPath)
}

// SetQuantity sets an item's quantity, clamped to at least one.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int, returnPath string) (View, error) {
	item, err := s.item(itemID)
	if err != nil {
		return View{}, err
	}
	return s.setQuantity(ctx, item, quantity, returnPath)
}

func (s *Store) setQuantity(ctx context.Context, item types.CartItem, quantity int, returnPath string) (View, error) {
	quantity = ClampQuantity(quantity)
	if quantity == item.Quantity {
		return s.View(), nil
	}
	if err := s.requireIdentity(ctx, returnPath, msgLoginToUpdate); err != nil {
		return View{}, err
	}
	if err := s.backend.UpdateCartItem(ctx, item.ID, quantity); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to update cart item"))
		return View{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// Remove deletes an item and re-fetches the cart.
func (s *Store) Remove(ctx context.Context, itemID, returnPath string) (View, error) {
	if _, err := s.item(itemID); err != nil {
		return View{}, err
	}
	if err := s.requireIdentity(ctx, returnPath, msgLoginToRemove); err != nil {
		return View{}, err
	}
	if err := s.backend.RemoveCartItem(ctx, itemID); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to remove item from cart"))
		return View{}, err
	}
	s.notices.Success("Item removed from cart")
	if err := s.Refresh(ctx); err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// SetSelected flags one item for checkout.
func (s *Store) SetSelected(itemID string, selected bool) (View, error) {
	if _, err := s.item(itemID); err != nil {
		return View{}, err
	}
	s.mu.Lock()
	s.selected[itemID] = selected
	s.mu.Unlock()
	return s.View(), nil
}

// SelectAll sets every item's flag to selected.
func (s *Store) SelectAll(selected bool) View {
	s.mu.Lock()
	if s.cart != nil {
		for _, item := range s.cart.CartItems {
			s.selected[item.ID] = selected
		}
	}
	s.mu.Unlock()
	return s.View()
}

// SelectedIDs lists selected item ids in cart order.
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDsLocked()
}

func (s *Store) selectedIDsLocked() []string {
	ids := []string{}
	if s.cart == nil {
		return ids
	}
	for _, item := range s.cart.CartItems {
		if s.selected[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// ProceedToCheckout returns the checkout navigation target for the current selection.
func (s *Store) ProceedToCheckout() (string, error) {
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		s.notices.Error(MsgSelectAtLeastOne)
		return "", pkgerrors.New(pkgerrors.CodeValidation, MsgSelectAtLeastOne)
	}
	return CheckoutPath(ids), nil
}

// CheckoutPath is the checkout view URL for the given item ids.
func CheckoutPath(ids []string) string {
	return "/checkout?items=" + strings.Join(ids, ",")
}

// Snapshot returns the last applied cart, or nil before the first load.
func (s *Store) Snapshot() *types.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Reset forgets the snapshot and selection so the next Load starts clean.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.selected = map[string]bool{}
}

// Release marks the store abandoned; responses arriving later are dropped.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
}

func (s *Store) item(itemID string) (types.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.cart.Item(itemID); ok {
		return item, nil
	}
	return types.CartItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// requireIdentity runs before any mutation. notice is shown when the visitor is anonymous.
func (s *Store) requireIdentity(ctx context.Context, returnPath, notice string) error {
	identity, err := s.auth.Identity(ctx)
	if err != nil {
		return err
	}
	if identity == nil {
		if notice != "" {
			s.notices.Error(notice)
		}
		if strings.TrimSpace(returnPath) == "" {
			returnPath = CartPath
		}
		return s.auth.Unauthenticated(returnPath)
	}
	return nil
}

// ClampQuantity enforces the one-item minimum.
func ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

// SelectedSubtotal sums price times quantity over the selected items.
func SelectedSubtotal(items []types.CartItem, selected map[string]bool) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if selected[item.ID] {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}
