package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mgluxury/boutique/internal/api/handler"
	"github.com/mgluxury/boutique/internal/api/middleware"
	"github.com/mgluxury/boutique/internal/core/money"
	"github.com/mgluxury/boutique/internal/core/service"
	"github.com/mgluxury/boutique/internal/infrastructure/db/memory"
	"github.com/mgluxury/boutique/internal/infrastructure/queue"
	"github.com/mgluxury/boutique/internal/seed"
)

type nopUploader struct{}

func (nopUploader) Upload(context.Context, string, []byte) (string, error) {
	return "https://i.ibb.co/x/y.png", nil
}

// The HTTP metrics middleware registers collectors globally, so the router
// is built once per test binary.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
	testStore  *memory.Store
)

func router(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		log := zerolog.Nop()
		testStore = memory.NewStore()
		file, err := seed.Default()
		if err != nil {
			t.Fatalf("default seed: %v", err)
		}
		if err := seed.Apply(context.Background(), file, seed.Targets{
			Categories: testStore.Categories(),
			Products:   testStore.Products(),
		}, log); err != nil {
			t.Fatalf("apply seed: %v", err)
		}

		slot := memory.NewSlot()
		f := money.NewFormatter("", "F")
		catalogSvc := service.NewCatalogService(testStore.Categories(), testStore.Products(), language.French, log)
		cartSvc := service.NewCartService(slot, testStore.Products(), log)
		checkoutSvc := service.NewCheckoutService(cartSvc, testStore.Orders(), testStore.OrderItems(), service.CheckoutConfig{
			Recipient:      "221778012731",
			PersistTimeout: time.Second,
			Formatter:      f,
		}, log)
		authSvc := service.NewAuthService(service.NewStaticListProvider(file.Identities()), slot, "test-secret", time.Hour, log)
		eventSvc := service.NewOrderEventService(testStore.Orders(), testStore.Events(), memory.NewDedup(), log)

		testRouter = NewRouter(Dependencies{
			Log:           log,
			JWTSecret:     "test-secret",
			Formatter:     f,
			PageSize:      12,
			MaxImageBytes: 1 << 20,
			Catalog:       catalogSvc,
			Cart:          cartSvc,
			Checkout:      checkoutSvc,
			Auth:          authSvc,
			Account:       service.NewAccountService(testStore.Orders()),
			Admin:         service.NewAdminService(testStore.Categories(), testStore.Products(), testStore.Orders(), testStore.OrderItems(), eventSvc, 12, log),
			Images:        service.NewImageService(nopUploader{}, 1<<20, log),
			Dispatcher:    queue.NewDispatcher(1, eventSvc, log),
			Health:        map[string]handler.Pinger{},
		})
	})
	return testRouter
}

func do(t *testing.T, e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	return resp.Token
}

func TestRouter_Probes(t *testing.T) {
	e := router(t)
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(t, e, http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_CartToCheckout(t *testing.T) {
	e := router(t)

	rec := do(t, e, http.MethodGet, "/v1/products?sort=price-asc", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list products: %d", rec.Code)
	}
	var page struct {
		Data []struct {
			ID    string `json:"id"`
			Price int64  `json:"price"`
			Stock int    `json:"stock"`
		} `json:"data"`
	}
	decodeBody(t, rec, &page)
	if len(page.Data) == 0 {
		t.Fatalf("seeded catalog is empty")
	}
	for i := 1; i < len(page.Data); i++ {
		if page.Data[i-1].Price > page.Data[i].Price {
			t.Fatalf("products not sorted by price: %+v", page.Data)
		}
	}
	p := page.Data[0]

	rec = do(t, e, http.MethodPost, "/v1/cart/items", `{"product_id":"`+p.ID+`","quantity":2}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart: %d (%s)", rec.Code, rec.Body.String())
	}
	cartID := rec.Header().Get(middleware.HeaderCartID)
	if cartID == "" {
		t.Fatalf("cart id not minted")
	}
	headers := map[string]string{middleware.HeaderCartID: cartID}

	rec = do(t, e, http.MethodPost, "/v1/checkout", `{"name":"Awa Ndiaye","phone":"+221770000000","address":"Dakar"}`, headers)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var res struct {
		OrderID     string `json:"order_id"`
		Total       int64  `json:"total"`
		HandoffURL  string `json:"handoff_url"`
		CartCleared bool   `json:"cart_cleared"`
	}
	decodeBody(t, rec, &res)
	if res.Total != 2*p.Price || !res.CartCleared || res.OrderID == "" {
		t.Fatalf("unexpected checkout: %+v", res)
	}
	u, err := url.Parse(res.HandoffURL)
	if err != nil || u.Host != "wa.me" || u.Path != "/221778012731" || u.Query().Get("text") == "" {
		t.Fatalf("unexpected handoff url: %q", res.HandoffURL)
	}

	rec = do(t, e, http.MethodGet, "/v1/cart", "", headers)
	var cart struct {
		TotalItems int `json:"total_items"`
	}
	decodeBody(t, rec, &cart)
	if cart.TotalItems != 0 {
		t.Fatalf("cart not cleared after checkout: %d items", cart.TotalItems)
	}

	rec = do(t, e, http.MethodPost, "/v1/checkout", `{"name":"Awa","phone":"1","address":"Dakar"}`, headers)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty cart checkout: expected 422, got %d", rec.Code)
	}
}

func TestRouter_AdminAccess(t *testing.T) {
	e := router(t)

	if rec := do(t, e, http.MethodGet, "/v1/admin/stats", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	customer := login(t, e, "client@test.com", "client123")
	rec := do(t, e, http.MethodGet, "/v1/admin/stats", "", map[string]string{"Authorization": "Bearer " + customer})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer: expected 403, got %d", rec.Code)
	}

	admin := login(t, e, "admin@mgluxury.com", "admin123")
	auth := map[string]string{"Authorization": "Bearer " + admin}
	rec = do(t, e, http.MethodGet, "/v1/admin/stats", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, "/v1/admin/orders/events",
		`[{"order_id":"o1","status":"confirmed","timestamp":"2026-03-01T10:00:00Z","source":"erp"}]`, auth)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("events: expected 202, got %d (%s)", rec.Code, rec.Body.String())
	}

	if rec := do(t, e, http.MethodPost, "/auth/logout", "", auth); rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/v1/admin/stats", "", auth); rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked session: expected 401, got %d", rec.Code)
	}
}

func TestRouter_BadCredentials(t *testing.T) {
	e := router(t)
	rec := do(t, e, http.MethodPost, "/auth/login", `{"email":"admin@mgluxury.com","password":"nope"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error != "Email ou mot de passe incorrect." {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestRouter_ZeroMaxPriceFiltersPaidProducts(t *testing.T) {
	e := router(t)
	rec := do(t, e, http.MethodGet, "/v1/products?max_price=0", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	decodeBody(t, rec, &page)
	if page.Pagination.Total != 0 || len(page.Data) != 0 {
		t.Fatalf("expected no product priced 0, got %d", page.Pagination.Total)
	}
}
