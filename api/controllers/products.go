package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/api/validators"
	product "github.com/angelmondragon/scent-storefront/internal/products"
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

func parsePage(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "pageNumber", 0, 0, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	size, err := validators.ParseQueryInt(r, "pageSize", 0, 0, pagination.MaxPageSize)
	if err != nil {
		return pagination.Params{}, err
	}
	params := pagination.Params{
		PageNumber: page,
		PageSize:   size,
		SortBy:     validators.SanitizeString(r.URL.Query().Get("sortBy"), 64),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("sortDirection")); raw != "" {
		dir, err := enums.ParseSortDirection(raw)
		if err != nil {
			return pagination.Params{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sortDirection")
		}
		params.SortDirection = dir
	}
	return params, nil
}

func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}

func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.Detail(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, detail)
	}
}

// ProductSearch runs the advanced search page with its filters.
func ProductSearch(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := r.URL.Query()
		filter := types.ProductFilter{
			Name:      validators.SanitizeString(q.Get("name"), 120),
			BrandName: validators.SanitizeString(q.Get("brandName"), 120),
			Size:      validators.SanitizeString(q.Get("size"), 40),
			Scent:     validators.SanitizeString(q.Get("scent"), 80),
			Page:      page,
		}
		if filter.MinPrice, err = validators.ParseQueryDecimal(r, "minPrice"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.MaxPrice, err = validators.ParseQueryDecimal(r, "maxPrice"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.IsActive, err = validators.ParseQueryBool(r, "isActive"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Search(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}
