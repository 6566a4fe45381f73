package service

import (
	"context"
	"fmt"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// AccountService serves the signed-in customer's own data.
type AccountService struct {
	orders ports.OrderRepository
}

func NewAccountService(orders ports.OrderRepository) *AccountService {
	return &AccountService{orders: orders}
}

// CustomerOrders lists the orders placed by userID, newest first.
func (s *AccountService) CustomerOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("customer orders: %w", err)
	}
	return orders, nil
}
