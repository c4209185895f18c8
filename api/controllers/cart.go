package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	"github.com/angelmondragon/scent-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const cartPage = "/cart"

func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		view, err := ws.Cart.Load(r.Context(), returnPath(r, cartPage))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartAddItem adds a variant from the product page.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload types.AddToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := ws.Cart.Add(r.Context(), payload, returnPath(r, cartPage))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

type quantityRequest struct {
	Delta    *int `json:"delta"`
	Quantity *int `json:"quantity"`
}

// CartChangeQuantity applies either a relative delta or an absolute quantity.
func CartChangeQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload quantityRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if (payload.Delta == nil) == (payload.Quantity == nil) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of delta or quantity is required"))
			return
		}

		itemID := chi.URLParam(r, "itemId")
		back := returnPath(r, cartPage)
		var (
			view cart.View
			err  error
		)
		if payload.Delta != nil {
			view, err = ws.Cart.ChangeQuantity(r.Context(), itemID, *payload.Delta, back)
		} else {
			view, err = ws.Cart.SetQuantity(r.Context(), itemID, *payload.Quantity, back)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		view, err := ws.Cart.Remove(r.Context(), chi.URLParam(r, "itemId"), returnPath(r, cartPage))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

type selectionRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

func CartSelectItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload selectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := ws.Cart.SetSelected(chi.URLParam(r, "itemId"), *payload.Selected)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func CartSelectAll(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload selectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Cart.SelectAll(*payload.Selected))
	}
}

// CartProceed answers with the checkout URL for the selected items.
func CartProceed(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		target, err := ws.Cart.ProceedToCheckout()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteRedirect(r.Context(), w, nil, target)
	}
}
