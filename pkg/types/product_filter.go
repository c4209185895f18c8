package types

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductFilter drives the backend's full product search.
type ProductFilter struct {
	Name      string           `json:"name,omitempty"`
	BrandName string           `json:"brandName,omitempty"`
	Size      string           `json:"size,omitempty"`
	Scent     string           `json:"scent,omitempty"`
	MinPrice  *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice  *decimal.Decimal `json:"maxPrice,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`

	Page pagination.Params `json:"-"`
}

// Values encodes the filter and its page into query parameters. Blank filters are omitted.
func (f ProductFilter) Values() url.Values {
	v := f.Page.Values()
	setIf := func(key, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			v.Set(key, trimmed)
		}
	}
	setIf("name", f.Name)
	setIf("brandName", f.BrandName)
	setIf("size", f.Size)
	setIf("scent", f.Scent)
	if f.MinPrice != nil {
		v.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", f.MaxPrice.String())
	}
	if f.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	return v
}
