package controllers

import (
	"net/http"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	"github.com/angelmondragon/scent-storefront/internal/checkout"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

// CheckoutInit prepares the checkout page for the items query parameter.
func CheckoutInit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		view, err := ws.Checkout.Init(r.Context(), r.URL.Query().Get("items"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CheckoutSubmit places the order and answers with where the browser goes next:
// the confirmation page for cash, the payment provider otherwise.
func CheckoutSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		form := checkout.DefaultForm()
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		outcome, err := ws.Checkout.Submit(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRedirect(r.Context(), w, outcome, outcome.Redirect)
	}
}
