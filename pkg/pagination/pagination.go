package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
)

const (
	// DefaultPageSize is the standard page size when none is provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any listing can request.
	MaxPageSize = 100
	// WindowSize is the number of page buttons shown around the current page.
	WindowSize = 5
)

// Params holds 1-based page inputs forwarded to backend listings.
type Params struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection enums.SortDirection
}

// Normalize fills defaults and clamps values into range.
func (p Params) Normalize(defaults Params) Params {
	if p.PageNumber < 1 {
		p.PageNumber = defaults.PageNumber
	}
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	p.PageSize = NormalizeSize(p.PageSize, defaults.PageSize)
	if strings.TrimSpace(p.SortBy) == "" {
		p.SortBy = defaults.SortBy
	}
	if !p.SortDirection.IsValid() {
		p.SortDirection = defaults.SortDirection
	}
	if !p.SortDirection.IsValid() {
		p.SortDirection = enums.SortAsc
	}
	return p
}

// NormalizeSize applies the fallback and the maximum.
func NormalizeSize(size, fallback int) int {
	if size <= 0 {
		size = fallback
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Values encodes the params into the backend's query parameters.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("pageNumber", strconv.Itoa(p.PageNumber))
	v.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortDirection != "" {
		v.Set("sortDirection", p.SortDirection.String())
	}
	return v
}

// ParseSort splits a "field,direction" token such as "createdAt,desc".
func ParseSort(value string) (string, enums.SortDirection, bool) {
	field, dir, _ := strings.Cut(strings.TrimSpace(value), ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", false
	}
	if dir == "" {
		return field, enums.SortAsc, true
	}
	parsed, err := enums.ParseSortDirection(dir)
	if err != nil {
		return "", "", false
	}
	return field, parsed, true
}

// Window returns up to WindowSize page numbers centred on current, clamped to [1, total].
func Window(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - WindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + WindowSize - 1
	if end > total {
		end = total
		start = end - WindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	return pages
}

// Range returns the 1-based first and last row numbers shown on a page.
// An empty result set yields 0 to 0.
func Range(page, size int, total int64) (from, to int64) {
	if total <= 0 || page < 1 || size < 1 {
		return 0, 0
	}
	from = int64(page-1)*int64(size) + 1
	to = int64(page) * int64(size)
	if to > total {
		to = total
	}
	if from > total {
		from = total
	}
	return from, to
}
