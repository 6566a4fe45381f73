package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/mgluxury/boutique/internal/core/catalog"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// CatalogService serves the read-only storefront views.
type CatalogService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	locale     language.Tag
	log        zerolog.Logger
}

func NewCatalogService(categories ports.CategoryRepository, products ports.ProductRepository, locale language.Tag, log zerolog.Logger) *CatalogService {
	return &CatalogService{categories: categories, products: products, locale: locale, log: log}
}

// Snapshot is the full catalog as loaded in one refresh.
type Snapshot struct {
	Categories []domain.Category
	Products   []domain.Product
}

// Snapshot loads categories and products concurrently.
func (s *CatalogService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.categories.List(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		products, err := s.products.List(gctx, ports.ProductFilter{})
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		snap.Products = products
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CatalogService) Category(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.Get(ctx, id)
}

// ProductView is a product with its resolved category label.
type ProductView struct {
	domain.Product
	CategoryLabel string
}

// ProductPage is a pipeline result with labels resolved.
type ProductPage struct {
	Items      []ProductView
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// Products runs the query pipeline over the whole catalog.
func (s *CatalogService) Products(ctx context.Context, spec catalog.QuerySpec) (*ProductPage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if spec.Locale == language.Und {
		spec.Locale = s.locale
	}

	res := catalog.Run(snap.Products, spec)
	return &ProductPage{
		Items:      s.label(snap.Categories, res.Items),
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		Page:       res.Page,
		PageSize:   res.PageSize,
	}, nil
}

// ProductDetail is a product page: the product and up to four related ones.
type ProductDetail struct {
	Product ProductView
	Related []ProductView
}

func (s *CatalogService) Product(ctx context.Context, id string) (*ProductDetail, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	related := catalog.Related(snap.Products, *p, catalog.SliderSize)
	return &ProductDetail{
		Product: ProductView{Product: *p, CategoryLabel: domain.CategoryLabel(snap.Categories, p.Category)},
		Related: s.label(snap.Categories, related),
	}, nil
}

// Featured returns the home page "featured" row.
func (s *CatalogService) Featured(ctx context.Context) ([]ProductView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.label(snap.Categories, catalog.Featured(snap.Products, catalog.SliderSize)), nil
}

// Newest returns the home page "new arrivals" row.
func (s *CatalogService) Newest(ctx context.Context) ([]ProductView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.label(snap.Categories, catalog.Newest(snap.Products, catalog.SliderSize)), nil
}

func (s *CatalogService) label(categories []domain.Category, products []domain.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = ProductView{Product: p, CategoryLabel: domain.CategoryLabel(categories, p.Category)}
	}
	return out
}
