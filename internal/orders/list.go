package orders

import (
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const (
	// DefaultSort is the listing order for order pages.
	DefaultSort = "createdAt,desc"

	defaultSortField = "createdAt"
)

var listDefaults = pagination.Params{
	PageNumber:    1,
	PageSize:      pagination.DefaultPageSize,
	SortBy:        defaultSortField,
	SortDirection: enums.SortDesc,
}

// ListQuery is a page request as it arrives from the browser: a page number and a
// "field,direction" sort token.
type ListQuery struct {
	Page     int
	PageSize int
	Sort     string
}

// Params resolves the query against the listing defaults.
func (q ListQuery) Params() pagination.Params {
	params := pagination.Params{PageNumber: q.Page, PageSize: q.PageSize}
	if field, dir, ok := pagination.ParseSort(q.Sort); ok {
		params.SortBy = field
		params.SortDirection = dir
	}
	return params.Normalize(listDefaults)
}

// ListView is one page of orders plus the pager state around it.
type ListView struct {
	Orders        []types.Order `json:"orders"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Sort          string        `json:"sort"`
	Pages         []int         `json:"pages"`
	ShowingFrom   int64         `json:"showingFrom"`
	ShowingTo     int64         `json:"showingTo"`
	HasPrevious   bool          `json:"hasPrevious"`
	HasNext       bool          `json:"hasNext"`
}

func newListView(page *types.Page[types.Order], params pagination.Params) ListView {
	view := ListView{
		Orders:     []types.Order{},
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
		Sort:       params.SortBy + "," + params.SortDirection.String(),
		Pages:      []int{},
	}
	if page == nil {
		return view
	}
	if page.Content != nil {
		view.Orders = page.Content
	}
	if page.PageNumber > 0 {
		view.PageNumber = page.PageNumber
	}
	if page.PageSize > 0 {
		view.PageSize = page.PageSize
	}
	view.TotalElements = page.TotalElements
	view.TotalPages = page.TotalPages
	view.Pages = pagination.Window(view.PageNumber, view.TotalPages)
	if len(view.Orders) > 0 {
		view.ShowingFrom, view.ShowingTo = pagination.Range(view.PageNumber, view.PageSize, view.TotalElements)
	}
	view.HasPrevious = view.PageNumber > 1
	view.HasNext = view.PageNumber < view.TotalPages
	return view
}
