package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/mgluxury/boutique/internal/api/middleware"
	"github.com/mgluxury/boutique/internal/core/domain"
)

type stubAccounts struct {
	userID string
}

func (s *stubAccounts) CustomerOrders(_ context.Context, userID string) ([]domain.Order, error) {
	s.userID = userID
	return []domain.Order{{ID: "o2", UserID: userID, TotalPrice: 3000, Status: domain.StatusConfirmed}}, nil
}

func TestAccountHandler_Orders(t *testing.T) {
	stub := &stubAccounts{}
	h := NewAccountHandler(stub, plain)

	c, rec := newContext(http.MethodGet, "/v1/me/orders", "")
	c.Set(middleware.KeyIdentity, &domain.Identity{ID: "2", Role: domain.RoleCustomer})
	if err := h.Orders(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.userID != "2" {
		t.Fatalf("expected orders of user 2, got %q", stub.userID)
	}
	resp := decode[listResponse[orderResponse]](t, rec)
	if len(resp.Data) != 1 || resp.Data[0].TotalFormatted != "3000 F" {
		t.Fatalf("unexpected orders: %+v", resp.Data)
	}
}

func TestAccountHandler_Orders_Anonymous(t *testing.T) {
	h := NewAccountHandler(&stubAccounts{}, plain)

	c, _ := newContext(http.MethodGet, "/v1/me/orders", "")
	if code := httpCode(t, h.Orders(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
