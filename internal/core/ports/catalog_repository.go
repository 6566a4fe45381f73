package ports

import (
	"context"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// List returns categories newest first.
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// ProductFilter narrows a product listing at the store. Zero values mean
// "no filter".
type ProductFilter struct {
	Category string
	Featured bool
	IsNew    bool
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// List returns products newest first. That order is the pipeline's
	// "default" order.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
