package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	"github.com/angelmondragon/scent-storefront/internal/orders"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
)

func parseListQuery(r *http.Request) (orders.ListQuery, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return orders.ListQuery{}, err
	}
	size, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return orders.ListQuery{}, err
	}
	return orders.ListQuery{Page: page, PageSize: size, Sort: r.URL.Query().Get("sort")}, nil
}

func MyOrders(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := ws.Orders.MyOrders(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// OrderDetail runs the detail view for an order. Every outcome, including forbidden
// and not found, is a view state rather than an HTTP error.
func OrderDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		view := ws.OrderDetail.Open(r.Context(), chi.URLParam(r, "orderId"))
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// OrderDetailLeave clears the shared selected order when the shopper navigates away.
func OrderDetailLeave(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := requireWorkspace(w, r, logg)
		if !ok {
			return
		}
		ws.OrderDetail.Leave()
		responses.WriteSuccess(r.Context(), w, ws.OrderDetail.Current())
	}
}
