package controllers

import (
	"net/http"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	"github.com/angelmondragon/scent-storefront/internal/search"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

type queryRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type keyRequest struct {
	Key string `json:"key" validate:"required,oneof=ArrowDown ArrowUp Enter"`
}

type suggestionRequest struct {
	Suggestion string `json:"suggestion" validate:"required"`
}

type searchRequest struct {
	PageNumber int `json:"pageNumber" validate:"min=0"`
}

func SearchState(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Search.View())
	}
}

// SearchSetQuery records a keystroke; suggestions show up in a later SearchState once
// typing settles.
func SearchSetQuery(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload queryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Search.SetQuery(r.Context(), payload.Query))
	}
}

func SearchKey(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload keyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := ws.Search.Key(r.Context(), search.Key(payload.Key))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func SearchSelectSuggestion(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload suggestionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := ws.Search.SelectSuggestion(r.Context(), payload.Suggestion)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// SearchRun runs the full search for the current query, or moves to another result
// page when a page number is given.
func SearchRun(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		var payload searchRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		var (
			view search.View
			err  error
		)
		if payload.PageNumber > 0 {
			view, err = ws.Search.ChangePage(r.Context(), payload.PageNumber)
		} else {
			view, err = ws.Search.Search(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func SearchFocus(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Search.Focus())
	}
}

// SearchDismiss closes the suggestion panel after a press outside it.
func SearchDismiss(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Search.Dismiss())
	}
}

func SearchClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(r.Context(), w, ws.Search.Clear())
	}
}
