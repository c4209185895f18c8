package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

func decodeVariant(r *http.Request) (types.VariantInput, error) {
	var payload types.VariantInput
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return types.VariantInput{}, err
	}
	if payload.Price.IsNegative() {
		return types.VariantInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must not be negative"})
	}
	return payload, nil
}

func AdminVariantCreate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		payload, err := decodeVariant(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant, err := ws.Variants.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(r.Context(), w, http.StatusCreated, variant)
	}
}

func AdminVariantDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		variant, err := ws.Variants.Get(r.Context(), chi.URLParam(r, "variantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, variant)
	}
}

func AdminVariantUpdate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		payload, err := decodeVariant(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant, err := ws.Variants.Update(r.Context(), chi.URLParam(r, "variantId"), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, variant)
	}
}

func AdminVariantDelete(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		if err := ws.Variants.Delete(r.Context(), chi.URLParam(r, "variantId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
