package product

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"golang.org/x/sync/errgroup"
)

const defaultListSize = 12

// Backend is the catalogue surface of the gateway.
type Backend interface {
	Product(ctx context.Context, id string) (*types.Product, error)
	ProductVariants(ctx context.Context, productID string) ([]types.ProductVariant, error)
	Products(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error)
	SearchProducts(ctx context.Context, filter types.ProductFilter) (*types.Page[types.Product], error)
}

// Service serves read-only catalogue pages.
type Service interface {
	Detail(ctx context.Context, id string) (*Detail, error)
	List(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error)
	Search(ctx context.Context, filter types.ProductFilter) (*types.Page[types.Product], error)
}

type service struct {
	backend Backend
	logg    *logger.Logger
}

func NewService(backend Backend, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, errors.New("product backend required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{backend: backend, logg: logg}, nil
}

// Detail is a product with its purchasable variants.
type Detail struct {
	Product  types.Product          `json:"product"`
	Variants []types.ProductVariant `json:"variants"`
	// DefaultVariantID is the first in-stock variant, or the first variant when none is in stock.
	DefaultVariantID string `json:"defaultVariantId,omitempty"`
}

// Detail fetches the product and its variants concurrently.
func (s *service) Detail(ctx context.Context, id string) (*Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	var (
		product  *types.Product
		variants []types.ProductVariant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.backend.Product(gctx, id)
		product = p
		return err
	})
	g.Go(func() error {
		v, err := s.backend.ProductVariants(gctx, id)
		variants = v
		return err
	})
	if err := g.Wait(); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"product_id": id, "error": err.Error()}), "product.detail_failed")
		return nil, err
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if variants == nil {
		variants = product.Variants
	}
	if variants == nil {
		variants = []types.ProductVariant{}
	}
	return &Detail{Product: *product, Variants: variants, DefaultVariantID: defaultVariant(variants)}, nil
}

func defaultVariant(variants []types.ProductVariant) string {
	for _, v := range variants {
		if v.InStock() {
			return v.ID
		}
	}
	if len(variants) > 0 {
		return variants[0].ID
	}
	return ""
}

func (s *service) List(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error) {
	page = page.Normalize(pagination.Params{PageNumber: 1, PageSize: defaultListSize, SortBy: "id", SortDirection: enums.SortAsc})
	return s.backend.Products(ctx, page)
}

// Search runs the advanced search. The price range must not be inverted.
func (s *service) Search(ctx context.Context, filter types.ProductFilter) (*types.Page[types.Product], error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice").
			WithDetails(map[string]string{"minPrice": "must not exceed maxPrice"})
	}
	if (filter.MinPrice != nil && filter.MinPrice.IsNegative()) || (filter.MaxPrice != nil && filter.MaxPrice.IsNegative()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	filter.Page = filter.Page.Normalize(pagination.Params{PageNumber: 1, PageSize: defaultListSize, SortBy: "id", SortDirection: enums.SortAsc})
	return s.backend.SearchProducts(ctx, filter)
}
