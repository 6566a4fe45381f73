// Package memory is an in-process catalog store and slot. Data lives as long
// as the process; it backs demos, tests and CATALOG_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

type Store struct {
	mu sync.RWMutex

	categories map[string]domain.Category
	products   map[string]domain.Product
	orders     map[string]domain.Order
	items      map[string][]domain.OrderItem
	users      map[string]domain.Identity
	events     []domain.OrderStatusEvent

	// creation order, oldest first
	categoryIDs []string
	productIDs  []string
	orderIDs    []string
}

func NewStore() *Store {
	return &Store{
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
		orders:     make(map[string]domain.Order),
		items:      make(map[string][]domain.OrderItem),
		users:      make(map[string]domain.Identity),
	}
}

func newID() string { return uuid.NewString() }

func (s *Store) Categories() ports.CategoryRepository  { return categoryRepo{s} }
func (s *Store) Products() ports.ProductRepository     { return productRepo{s} }
func (s *Store) Orders() ports.OrderRepository         { return orderRepo{s} }
func (s *Store) OrderItems() ports.OrderItemRepository { return itemRepo{s} }
func (s *Store) Events() ports.OrderEventRepository    { return eventRepo{s} }
func (s *Store) Users() ports.UserRepository           { return userRepo{s} }

// Events recorded so far, oldest first.
func (s *Store) AuditTrail() []domain.OrderStatusEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

func newestFirst[T any](ids []string, m map[string]T, keep func(T) bool) []T {
	out := make([]T, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		v := m[ids[i]]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.categoryIDs, r.s.categories, nil), nil
}

func (r categoryRepo) Get(_ context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r categoryRepo) nameTaken(name, exceptID string) bool {
	for id, c := range r.s.categories {
		if c.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r categoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return domain.ErrDuplicateCategory
	}
	c.ID = newID()
	r.s.categories[c.ID] = *c
	r.s.categoryIDs = append(r.s.categoryIDs, c.ID)
	return nil
}

func (r categoryRepo) Update(_ context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicateCategory
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.s.categories, id)
	r.s.categoryIDs = removeID(r.s.categoryIDs, id)
	return nil
}

type productRepo struct{ s *Store }

func (r productRepo) List(_ context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.productIDs, r.s.products, func(p domain.Product) bool {
		return (f.Category == "" || p.Category == f.Category) &&
			(!f.Featured || p.Featured) &&
			(!f.IsNew || p.IsNew)
	}), nil
}

func (r productRepo) Get(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r productRepo) Create(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	if _, ok := r.s.products[p.ID]; !ok {
		r.s.productIDs = append(r.s.productIDs, p.ID)
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) Update(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	r.s.productIDs = removeID(r.s.productIDs, id)
	return nil
}

type orderRepo struct{ s *Store }

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	o.StatusHistory = slices.Clone(o.StatusHistory)
	return o
}

func (r orderRepo) Create(_ context.Context, o *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = newID()
	stored := cloneOrder(*o)
	stored.Items = nil
	r.s.orders[o.ID] = stored
	r.s.orderIDs = append(r.s.orderIDs, o.ID)
	return nil
}

func (r orderRepo) Get(_ context.Context, id string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r orderRepo) List(_ context.Context) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.orderIDs, r.s.orders, nil), nil
}

func (r orderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.orderIDs, r.s.orders, func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id string, entry domain.StatusHistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o = cloneOrder(o)
	o.Status = entry.Status
	o.UpdatedAt = entry.Timestamp
	o.StatusHistory = append(o.StatusHistory, entry)
	r.s.orders[id] = o
	return nil
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.s.orders, id)
	r.s.orderIDs = removeID(r.s.orderIDs, id)
	return nil
}

type itemRepo struct{ s *Store }

func (r itemRepo) CreateMany(_ context.Context, orderID string, items []domain.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		it.ID = newID()
		it.OrderID = orderID
		r.s.items[orderID] = append(r.s.items[orderID], it)
	}
	return nil
}

func (r itemRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.items[orderID]), nil
}

func (r itemRepo) ListAll(_ context.Context) ([]domain.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.OrderItem
	for _, id := range r.s.orderIDs {
		out = append(out, r.s.items[id]...)
	}
	return out, nil
}

func (r itemRepo) DeleteByOrder(_ context.Context, orderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, orderID)
	return nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) InsertEvent(_ context.Context, e *domain.OrderStatusEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events = append(r.s.events, *e)
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) Create(_ context.Context, u *domain.Identity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	r.s.users[strings.ToLower(u.Email)] = *u
	return nil
}
