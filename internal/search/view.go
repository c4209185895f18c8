package search

import (
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// View is the search box as the page renders it. Highlighted is -1 when nothing is highlighted.
type View struct {
	Query           string          `json:"query"`
	Suggestions     []string        `json:"suggestions"`
	ShowSuggestions bool            `json:"showSuggestions"`
	Highlighted     int             `json:"highlighted"`
	HasSearched     bool            `json:"hasSearched"`
	Searching       bool            `json:"searching"`
	Products        []types.Product `json:"products"`
	TotalProducts   int64           `json:"totalProducts"`
	CurrentPage     int             `json:"currentPage"`
	TotalPages      int             `json:"totalPages"`
	Pages           []int           `json:"pages"`
}

func (b *Box) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := View{
		Query:           b.query,
		Suggestions:     append([]string{}, b.suggestions...),
		ShowSuggestions: b.show && len(b.suggestions) > 0,
		Highlighted:     b.highlight,
		HasSearched:     b.hasSearched,
		Searching:       b.searching,
		Products:        []types.Product{},
		Pages:           []int{},
	}
	if b.hasSearched && b.results != nil {
		if b.results.Content != nil {
			view.Products = b.results.Content
		}
		view.TotalProducts = b.results.TotalElements
		view.CurrentPage = b.results.PageNumber
		view.TotalPages = b.results.TotalPages
		if view.TotalPages > 1 {
			view.Pages = pagination.Window(view.CurrentPage, view.TotalPages)
		}
	}
	return view
}
