package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/money"
)

func checkoutFixture(t *testing.T) (*CartService, *stubOrderRepo, *stubItemRepo) {
	t.Helper()
	products := &stubProductRepo{products: []domain.Product{
		{ID: "A", Name: "Parfum Oud", Price: 5000, Stock: 10, Category: "parfum"},
		{ID: "B", Name: "Huile d'argan", Price: 3000, Stock: 5, Category: "huile"},
	}}
	carts := NewCartService(newStubSlot(), products, zerolog.Nop())
	ctx := context.Background()
	if _, err := carts.Add(ctx, "cart-1", "A", 2); err != nil {
		t.Fatalf("add A: %v", err)
	}
	if _, err := carts.Add(ctx, "cart-1", "B", 1); err != nil {
		t.Fatalf("add B: %v", err)
	}
	return carts, newStubOrderRepo(), newStubItemRepo()
}

func newCheckoutSvc(carts *CartService, orders *stubOrderRepo, items *stubItemRepo, timeout time.Duration) *CheckoutService {
	return NewCheckoutService(carts, orders, items, CheckoutConfig{
		Recipient:      "221778012731",
		PersistTimeout: timeout,
		Formatter:      money.NewFormatter("", "F"),
	}, zerolog.Nop())
}

var validForm = CheckoutInput{
	CartID:  "cart-1",
	Name:    "Awa Ndiaye",
	Phone:   "771234567",
	Address: "Dakar, Plateau",
}

func TestCheckout_Submit_HappyPath(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	svc := newCheckoutSvc(carts, orders, items, 0)

	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !res.Persisted || !res.Complete {
		t.Fatalf("expected persisted and complete, got %+v", res)
	}
	if res.Order.TotalPrice != 13000 {
		t.Errorf("expected total 13000, got %d", res.Order.TotalPrice)
	}
	if res.Order.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", res.Order.Status)
	}
	for _, want := range []string{"2", "13000", "Parfum Oud", "Huile d'argan"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("message missing %q:\n%s", want, res.Message)
		}
	}
	if !strings.HasPrefix(res.HandoffURL, "https://wa.me/221778012731?text=") {
		t.Errorf("unexpected handoff url %q", res.HandoffURL)
	}
	u, err := url.Parse(res.HandoffURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if got := u.Query().Get("text"); got != res.Message {
		t.Errorf("decoded text differs from message")
	}
	if !res.CartCleared || !carts.Snapshot(context.Background(), "cart-1").Empty() {
		t.Errorf("expected cart cleared")
	}
	if n := len(items.byOrder[res.Order.ID]); n != 2 {
		t.Errorf("expected 2 persisted items, got %d", n)
	}
	for _, it := range res.Order.Items {
		if it.OrderID != res.Order.ID {
			t.Errorf("item not linked to order: %+v", it)
		}
	}
	if res.Warning != "" {
		t.Errorf("expected no warning, got %q", res.Warning)
	}
}

func TestCheckout_Submit_PlaceholderEmail(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	svc := newCheckoutSvc(carts, orders, items, 0)

	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order.CustomerEmail != "awa.ndiaye@whatsapp.local" {
		t.Errorf("unexpected placeholder email %q", res.Order.CustomerEmail)
	}
}

func TestCheckout_Submit_HeaderFailureStillHandsOff(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	orders.createErr = errBackend
	svc := newCheckoutSvc(carts, orders, items, 0)

	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("persistence failure must not fail checkout, got: %v", err)
	}
	if res.Persisted {
		t.Error("expected order not persisted")
	}
	if res.HandoffURL == "" {
		t.Error("expected handoff link despite persistence failure")
	}
	if res.CartCleared || carts.Snapshot(context.Background(), "cart-1").Empty() {
		t.Error("cart must survive a failed persistence")
	}
	if res.Warning == "" {
		t.Error("expected a warning")
	}
}

func TestCheckout_Submit_ItemsFailure(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	items.createErr = errBackend
	svc := newCheckoutSvc(carts, orders, items, 0)

	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Persisted || res.Complete {
		t.Errorf("expected header only, got persisted=%v complete=%v", res.Persisted, res.Complete)
	}
	if res.HandoffURL == "" {
		t.Error("expected handoff link")
	}
}

func TestCheckout_Submit_PersistTimeout(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	orders.block = true
	svc := newCheckoutSvc(carts, orders, items, 20*time.Millisecond)

	start := time.Now()
	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("persistence timeout not applied")
	}
	if res.Persisted || res.HandoffURL == "" {
		t.Errorf("expected unpersisted order with link, got %+v", res)
	}
}

func TestCheckout_Submit_Validation(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	svc := newCheckoutSvc(carts, orders, items, 0)

	_, err := svc.Submit(context.Background(), CheckoutInput{CartID: "cart-1", Name: "  "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got: %v", err)
	}
	var verr *domain.ValidationError
	errors.As(err, &verr)
	for _, field := range []string{"name", "phone", "address"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected %s to be reported", field)
		}
	}
	if len(orders.byID) != 0 {
		t.Error("no order may be persisted on invalid input")
	}
}

func TestCheckout_Submit_EmptyCart(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	svc := newCheckoutSvc(carts, orders, items, 0)

	in := validForm
	in.CartID = "other"
	_, err := svc.Submit(context.Background(), in)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestCheckout_Submit_NoRecipientKeepsCart(t *testing.T) {
	carts, orders, items := checkoutFixture(t)
	svc := NewCheckoutService(carts, orders, items, CheckoutConfig{Formatter: money.NewFormatter("", "F")}, zerolog.Nop())

	res, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Persisted {
		t.Error("expected persisted order")
	}
	if res.HandoffURL != "" || res.CartCleared {
		t.Errorf("expected no link and cart kept, got %+v", res)
	}
}
