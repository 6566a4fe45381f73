package ports

import (
	"context"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// OrderRepository defines persistence operations for order headers.
// Items live in OrderItemRepository, mirroring the two backend tables.
type OrderRepository interface {
	// Create inserts the header and assigns o.ID.
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders newest first.
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdateStatus sets the order's status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry) error
	Delete(ctx context.Context, id string) error
}

// OrderItemRepository persists order lines.
type OrderItemRepository interface {
	CreateMany(ctx context.Context, orderID string, items []domain.OrderItem) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	// ListAll returns every persisted line, used for sales statistics.
	ListAll(ctx context.Context) ([]domain.OrderItem, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}

// OrderEventRepository stores the status change audit trail.
type OrderEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderStatusEvent) error
}
