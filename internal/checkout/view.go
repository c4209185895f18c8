package checkout

import (
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

type DeliveryOption struct {
	Method   enums.DeliveryMethod `json:"method"`
	Name     string               `json:"name"`
	Fee      decimal.Decimal      `json:"fee"`
	Selected bool                 `json:"selected"`
}

type PaymentOption struct {
	Method   enums.PaymentMethod `json:"method"`
	Name     string              `json:"name"`
	Hosted   bool                `json:"hosted"`
	Selected bool                `json:"selected"`
}

// View is the checkout page state.
type View struct {
	Initialized     bool             `json:"initialized"`
	Items           []types.CartItem `json:"items"`
	Form            Form             `json:"form"`
	DeliveryOptions []DeliveryOption `json:"deliveryOptions"`
	PaymentOptions  []PaymentOption  `json:"paymentOptions"`
	Totals          DisplayTotals    `json:"totals"`
	SubmitLabel     string           `json:"submitLabel"`
}

// View derives the page from the last cart snapshot and the current form.
func (s *Service) View() View {
	s.mu.Lock()
	form := s.form
	ids := append([]string(nil), s.itemIDs...)
	initialized := s.initialized
	s.mu.Unlock()

	items := SelectItems(s.cart.Snapshot(), ids)
	return View{
		Initialized:     initialized,
		Items:           items,
		Form:            form,
		DeliveryOptions: deliveryOptions(form.DeliveryMethod),
		PaymentOptions:  paymentOptions(form.PaymentMethod),
		Totals:          ComputeTotals(items, form.DeliveryMethod),
		SubmitLabel:     SubmitLabel(form.PaymentMethod),
	}
}

func deliveryOptions(selected enums.DeliveryMethod) []DeliveryOption {
	methods := enums.DeliveryMethods()
	out := make([]DeliveryOption, 0, len(methods))
	for _, m := range methods {
		out = append(out, DeliveryOption{Method: m, Name: m.DisplayName(), Fee: m.Fee(), Selected: m == selected})
	}
	return out
}

func paymentOptions(selected enums.PaymentMethod) []PaymentOption {
	methods := enums.PaymentMethods()
	out := make([]PaymentOption, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentOption{Method: m, Name: m.DisplayName(), Hosted: m.RequiresHostedSession(), Selected: m == selected})
	}
	return out
}
