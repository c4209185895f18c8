package types

import "github.com/shopspring/decimal"

// Product is the shopper-facing catalogue entry.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	BrandName       string           `json:"brandName,omitempty"`
	ThumbnailImage  string           `json:"thumbnailImage,omitempty"`
	ProductImages   []string         `json:"productImages,omitempty"`
	MinPrice        decimal.Decimal  `json:"minPrice"`
	MaxPrice        decimal.Decimal  `json:"maxPrice"`
	IsActive        bool             `json:"isActive"`
	RelatedProducts []Product        `json:"relatedProducts,omitempty"`
	Variants        []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant carries size, scent and price. Stock is advisory display data.
type ProductVariant struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Scent     string          `json:"scent,omitempty"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
}

// InStock reports whether the variant can be added to a cart.
func (v ProductVariant) InStock() bool {
	return v.Stock > 0
}

// VariantInput is the admin create/update body for /api/product-variant.
type VariantInput struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required,max=120"`
	Size      string          `json:"size,omitempty" validate:"max=40"`
	Scent     string          `json:"scent,omitempty" validate:"max=80"`
	Stock     int             `json:"stock" validate:"min=0"`
	Price     decimal.Decimal `json:"price"`
}
