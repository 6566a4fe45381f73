package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubSlot struct {
	mu     sync.Mutex
	data   map[string][]byte
	setErr error
}

func newStubSlot() *stubSlot { return &stubSlot{data: map[string][]byte{}} }

func (s *stubSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubSlot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *stubSlot) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type stubProductRepo struct {
	products []domain.Product
	listErr  error
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ProductFilter) ([]domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return slices.Clone(r.products), nil
}

func (r *stubProductRepo) Get(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = "p" + strconv.Itoa(len(r.products)+1)
	r.products = append([]domain.Product{*p}, r.products...)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = slices.Delete(r.products, i, i+1)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return slices.Clone(r.categories), nil
}

func (r *stubCategoryRepo) Get(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	c.ID = "c" + strconv.Itoa(len(r.categories)+1)
	r.categories = append(r.categories, *c)
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = *c
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = slices.Delete(r.categories, i, i+1)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	order     []string // newest first
	createErr error
	updateErr error
	block     bool // Create waits for ctx cancellation
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: map[string]*domain.Order{}}
}

func (r *stubOrderRepo) put(o *domain.Order) {
	r.byID[o.ID] = o
	r.order = append([]string{o.ID}, r.order...)
}

func (r *stubOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if r.createErr != nil {
		return r.createErr
	}
	o.ID = "o" + strconv.Itoa(len(r.byID)+1)
	r.put(o)
	return nil
}

func (r *stubOrderRepo) Get(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, id := range r.order {
		if r.byID[id].UserID == userID {
			out = append(out, *r.byID[id])
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, entry domain.StatusHistoryEntry) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.byID[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = entry.Status
	o.StatusHistory = append(o.StatusHistory, entry)
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

type stubItemRepo struct {
	byOrder   map[string][]domain.OrderItem
	createErr error
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{byOrder: map[string][]domain.OrderItem{}}
}

func (r *stubItemRepo) CreateMany(_ context.Context, orderID string, items []domain.OrderItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, it := range items {
		it.OrderID = orderID
		r.byOrder[orderID] = append(r.byOrder[orderID], it)
	}
	return nil
}

func (r *stubItemRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	return r.byOrder[orderID], nil
}

func (r *stubItemRepo) ListAll(_ context.Context) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, items := range r.byOrder {
		out = append(out, items...)
	}
	return out, nil
}

func (r *stubItemRepo) DeleteByOrder(_ context.Context, orderID string) error {
	delete(r.byOrder, orderID)
	return nil
}

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.OrderStatusEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.OrderStatusEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	return d.dupResult || slices.Contains(d.marked, key), d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, key string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, key)
	return nil
}

var errBackend = errors.New("backend unavailable")
