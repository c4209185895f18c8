package cart

import (
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// ItemView is a cart line with its selection flag.
type ItemView struct {
	types.CartItem
	Selected  bool            `json:"selected"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// View is the cart page state.
type View struct {
	Loaded           bool            `json:"loaded"`
	Items            []ItemView      `json:"items"`
	TotalItems       int             `json:"totalItems"`
	AllSelected      bool            `json:"allSelected"`
	SelectedCount    int             `json:"selectedCount"`
	SelectedSubtotal decimal.Decimal `json:"selectedSubtotal"`
}

// View derives the current page state.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{Items: []ItemView{}, SelectedSubtotal: decimal.Zero}
	if s.cart == nil {
		return view
	}
	view.Loaded = true
	view.TotalItems = s.cart.TotalItems
	view.AllSelected = len(s.cart.CartItems) > 0
	for _, item := range s.cart.CartItems {
		selected := s.selected[item.ID]
		if selected {
			view.SelectedCount++
		} else {
			view.AllSelected = false
		}
		view.Items = append(view.Items, ItemView{CartItem: item, Selected: selected, LineTotal: item.LineTotal()})
	}
	view.SelectedSubtotal = SelectedSubtotal(s.cart.CartItems, s.selected)
	return view
}
