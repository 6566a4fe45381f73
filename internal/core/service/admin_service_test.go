package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
)

type adminFixture struct {
	svc        *AdminService
	categories *stubCategoryRepo
	products   *stubProductRepo
	orders     *stubOrderRepo
	items      *stubItemRepo
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		categories: &stubCategoryRepo{categories: []domain.Category{{ID: "c1", Name: "parfum", Label: "Parfums"}}},
		products: &stubProductRepo{products: []domain.Product{
			{ID: "A", Name: "Parfum Oud", Price: 5000, Stock: 10, Category: "parfum"},
			{ID: "B", Name: "Huile d'argan", Price: 3000, Stock: 5, Category: "huile"},
		}},
		orders: newStubOrderRepo(),
		items:  newStubItemRepo(),
	}
	events := NewOrderEventService(f.orders, &stubEventRepo{}, &stubDedup{}, zerolog.Nop())
	f.svc = NewAdminService(f.categories, f.products, f.orders, f.items, events, 2, zerolog.Nop())
	return f
}

func (f *adminFixture) order(id string, status domain.OrderStatus, total int64, items ...domain.OrderItem) {
	f.orders.put(&domain.Order{ID: id, Status: status, TotalPrice: total, CreatedAt: time.Now()})
	if len(items) > 0 {
		_ = f.items.CreateMany(context.Background(), id, items)
	}
}

func TestAdmin_CreateProduct_FlagsNew(t *testing.T) {
	f := newAdminFixture()
	p := &domain.Product{Name: " Savon noir ", Price: 1500, Stock: 3, Category: "savon", Featured: true}

	if err := f.svc.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsNew || p.Featured {
		t.Errorf("expected new and not featured, got %+v", p)
	}
	if p.Name != "Savon noir" || p.ID == "" {
		t.Errorf("expected trimmed name and assigned id, got %+v", p)
	}
}

func TestAdmin_CreateProduct_Validation(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.CreateProduct(context.Background(), &domain.Product{Price: -1, Stock: -2})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got: %v", err)
	}
	for _, field := range []string{"name", "category", "price", "stock"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected %s reported", field)
		}
	}
}

func TestAdmin_UpdateProduct_ClearsNew(t *testing.T) {
	f := newAdminFixture()
	f.products.products[0].IsNew = true

	p := f.products.products[0]
	p.Price = 5500
	if err := f.svc.UpdateProduct(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := f.products.Get(context.Background(), "A")
	if got.IsNew || got.Price != 5500 {
		t.Errorf("unexpected product after update %+v", got)
	}
}

func TestAdmin_UpdateProduct_NotFound(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.UpdateProduct(context.Background(), &domain.Product{ID: "zz", Name: "x", Category: "y"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestAdmin_CreateCategory_Duplicate(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.CreateCategory(context.Background(), &domain.Category{Name: "parfum", Label: "Encore"})
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got: %v", err)
	}
	if err := f.svc.CreateCategory(context.Background(), &domain.Category{Name: "huile", Label: "Huiles"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAdmin_Orders_Paginated(t *testing.T) {
	f := newAdminFixture()
	for _, id := range []string{"o1", "o2", "o3", "o4", "o5"} {
		f.order(id, domain.StatusPending, 1000)
	}

	page, err := f.svc.Orders(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page.Page)
	}
	if page.Items[0].ID != "o3" {
		t.Errorf("expected newest first ordering, got %s", page.Items[0].ID)
	}
	if len(page.Controls) != 3 {
		t.Errorf("expected 3 page controls, got %v", page.Controls)
	}
}

func TestAdmin_Order_ResolvesNames(t *testing.T) {
	f := newAdminFixture()
	f.order("o1", domain.StatusPending, 13000,
		domain.OrderItem{ProductID: "A", Quantity: 2, Price: 5000},
		domain.OrderItem{ProductID: "gone", Quantity: 1, Price: 3000},
	)

	detail, err := f.svc.Order(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Lines[0].ProductName != "Parfum Oud" {
		t.Errorf("expected product name, got %q", detail.Lines[0].ProductName)
	}
	if detail.Lines[1].ProductName != MissingProductName {
		t.Errorf("expected placeholder, got %q", detail.Lines[1].ProductName)
	}
}

func TestAdmin_ApproveReject(t *testing.T) {
	f := newAdminFixture()
	f.order("o1", domain.StatusPending, 1000)
	f.order("o2", domain.StatusInProgress, 1000)
	ctx := context.Background()

	if err := f.svc.Approve(ctx, "o1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.svc.Reject(ctx, "o2"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if f.orders.byID["o1"].Status != domain.StatusConfirmed {
		t.Errorf("expected o1 confirmed, got %s", f.orders.byID["o1"].Status)
	}
	if f.orders.byID["o2"].Status != domain.StatusCancelled {
		t.Errorf("expected o2 cancelled, got %s", f.orders.byID["o2"].Status)
	}
	if err := f.svc.Approve(ctx, "o2"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancelled order must not be approvable, got: %v", err)
	}
}

func TestAdmin_DeleteOrder(t *testing.T) {
	f := newAdminFixture()
	f.order("o1", domain.StatusPending, 1000, domain.OrderItem{ProductID: "A", Quantity: 1, Price: 1000})
	ctx := context.Background()

	if err := f.svc.DeleteOrder(ctx, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.orders.byID["o1"]; ok {
		t.Error("expected order removed")
	}
	if len(f.items.byOrder["o1"]) != 0 {
		t.Error("expected items removed")
	}
	if err := f.svc.DeleteOrder(ctx, "o1"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got: %v", err)
	}
}

func TestAdmin_Stats_ExcludesCancelledRevenue(t *testing.T) {
	f := newAdminFixture()
	f.order("o1", domain.StatusConfirmed, 13000)
	f.order("o2", domain.StatusCancelled, 9000)
	f.order("o3", domain.StatusPending, 2000)

	st, err := f.svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Products != 2 || st.Orders != 3 {
		t.Errorf("unexpected counts %+v", st)
	}
	if st.Revenue != 15000 {
		t.Errorf("expected revenue 15000, got %d", st.Revenue)
	}
	if len(st.Recent) != 3 || st.Recent[0].ID != "o3" {
		t.Errorf("unexpected recent orders %v", st.Recent)
	}
}

func TestAdmin_ProductStats(t *testing.T) {
	f := newAdminFixture()
	f.order("o1", domain.StatusPending, 13000,
		domain.OrderItem{ProductID: "A", Quantity: 2, Price: 5000},
		domain.OrderItem{ProductID: "B", Quantity: 1, Price: 3000},
	)
	f.order("o2", domain.StatusPending, 9000, domain.OrderItem{ProductID: "B", Quantity: 3, Price: 3000})

	stats, err := f.svc.ProductStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0].ProductID != "B" || stats[0].Revenue != 12000 || stats[0].TimesOrdered != 2 || stats[0].QuantitySold != 4 {
		t.Errorf("unexpected top row %+v", stats[0])
	}
	if stats[1].ProductID != "A" || stats[1].Revenue != 10000 {
		t.Errorf("unexpected second row %+v", stats[1])
	}
}

func TestAccount_CustomerOrders(t *testing.T) {
	orders := newStubOrderRepo()
	orders.put(&domain.Order{ID: "o1", UserID: "u1"})
	orders.put(&domain.Order{ID: "o2", UserID: "u2"})
	orders.put(&domain.Order{ID: "o3", UserID: "u1"})
	svc := NewAccountService(orders)

	got, err := svc.CustomerOrders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o3" {
		t.Errorf("unexpected orders %v", got)
	}
	if _, err := svc.CustomerOrders(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got: %v", err)
	}
}
