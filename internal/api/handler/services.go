package handler

import (
	"context"

	"github.com/mgluxury/boutique/internal/core/cart"
	"github.com/mgluxury/boutique/internal/core/catalog"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
	"github.com/mgluxury/boutique/internal/core/service"
)

// The interfaces below are the slices of the core services each handler
// calls; handler tests substitute stubs.

type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, id string) (*domain.Category, error)
	Products(ctx context.Context, spec catalog.QuerySpec) (*service.ProductPage, error)
	Product(ctx context.Context, id string) (*service.ProductDetail, error)
	Featured(ctx context.Context) ([]service.ProductView, error)
	Newest(ctx context.Context) ([]service.ProductView, error)
}

type CartService interface {
	Snapshot(ctx context.Context, cartID string) cart.State
	Add(ctx context.Context, cartID, productID string, quantity int) (cart.State, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (cart.State, error)
	Remove(ctx context.Context, cartID, productID string) (cart.State, error)
	Clear(ctx context.Context, cartID string) error
}

type CheckoutService interface {
	Submit(ctx context.Context, in service.CheckoutInput) (*service.CheckoutResult, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	Logout(ctx context.Context, sid string) error
}

type AccountService interface {
	CustomerOrders(ctx context.Context, userID string) ([]domain.Order, error)
}

type AdminService interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Orders(ctx context.Context, page int) (*service.OrderPage, error)
	Order(ctx context.Context, id string) (*service.OrderDetail, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, notes string) error
	DeleteOrder(ctx context.Context, id string) error
	Stats(ctx context.Context) (*service.Stats, error)
	ProductStats(ctx context.Context) ([]service.ProductSales, error)
}

type ImageService interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// EventDispatcher is the interface the handler uses to enqueue events.
type EventDispatcher interface {
	Enqueue(ctx context.Context, event ports.OrderStatusEventInput) error
	EnqueueBatch(ctx context.Context, events []ports.OrderStatusEventInput) (int, error)
}
