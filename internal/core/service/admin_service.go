package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/catalog"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

const (
	// MissingProductName is shown for order lines whose product was deleted.
	MissingProductName = "Produit indisponible"
	recentOrders       = 5
	adminSource        = "admin"
)

// AdminService is the back office: catalog maintenance, order review and
// sales figures.
type AdminService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	orders     ports.OrderRepository
	items      ports.OrderItemRepository
	events     ports.OrderEventService
	pageSize   int
	log        zerolog.Logger
	now        func() time.Time
}

func NewAdminService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	orders ports.OrderRepository,
	items ports.OrderItemRepository,
	events ports.OrderEventService,
	pageSize int,
	log zerolog.Logger,
) *AdminService {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &AdminService{
		categories: categories,
		products:   products,
		orders:     orders,
		items:      items,
		events:     events,
		pageSize:   pageSize,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func validateCategory(c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Label = strings.TrimSpace(c.Label)
	verr := &domain.ValidationError{}
	if c.Name == "" {
		verr.Add("name", "la clé de catégorie est obligatoire")
	}
	if c.Label == "" {
		verr.Add("label", "le libellé est obligatoire")
	}
	return verr.OrNil()
}

func (s *AdminService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	existing, err := s.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	for _, e := range existing {
		if e.Name == c.Name {
			return fmt.Errorf("create category %q: %w", c.Name, domain.ErrDuplicateCategory)
		}
	}
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.categories.Create(ctx, c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	s.log.Info().Str("category", c.Name).Msg("category created")
	return nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	current, err := s.categories.Get(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now()
	if err := s.categories.Update(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// DeleteCategory leaves the category's products in place; they fall back to
// showing the raw key.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	verr := &domain.ValidationError{}
	if p.Name == "" {
		verr.Add("name", "le nom est obligatoire")
	}
	if p.Category == "" {
		verr.Add("category", "la catégorie est obligatoire")
	}
	if p.Price < 0 {
		verr.Add("price", "le prix doit être positif")
	}
	if p.Stock < 0 {
		verr.Add("stock", "le stock doit être positif")
	}
	return verr.OrNil()
}

// CreateProduct stores a new product, flagged as new and not featured.
func (s *AdminService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	now := s.now()
	p.IsNew = true
	p.Featured = false
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.products.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

// UpdateProduct replaces a product. Editing clears the "new" flag.
func (s *AdminService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	current, err := s.products.Get(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	p.IsNew = false
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.now()
	if err := s.products.Update(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// OrderPage is one page of the back office order list.
type OrderPage struct {
	catalog.Page[domain.Order]
	Controls []catalog.PageItem
}

// Orders lists orders newest first, one page at a time.
func (s *AdminService) Orders(ctx context.Context, page int) (*OrderPage, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	p := catalog.Paginate(orders, page, s.pageSize)
	return &OrderPage{Page: p, Controls: catalog.PageControls(p.Page, p.TotalPages)}, nil
}

// OrderLine is an order item with the product name resolved.
type OrderLine struct {
	domain.OrderItem
	ProductName string
}

// OrderDetail is an order with its enriched lines.
type OrderDetail struct {
	Order *domain.Order
	Lines []OrderLine
}

func (s *AdminService) Order(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := s.items.ListByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	lines := make([]OrderLine, len(items))
	for i, it := range items {
		lines[i] = OrderLine{OrderItem: it, ProductName: s.productName(ctx, it.ProductID)}
	}
	return &OrderDetail{Order: order, Lines: lines}, nil
}

func (s *AdminService) productName(ctx context.Context, id string) string {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			s.log.Warn().Err(err).Str("product_id", id).Msg("product lookup failed")
		}
		return MissingProductName
	}
	return p.Name
}

// Approve confirms a pending order.
func (s *AdminService) Approve(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, domain.StatusConfirmed, "")
}

// Reject cancels an order.
func (s *AdminService) Reject(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, domain.StatusCancelled, "")
}

// UpdateStatus moves an order along the lifecycle through the event pipeline.
func (s *AdminService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, notes string) error {
	return s.events.Process(ctx, ports.OrderStatusEventInput{
		OrderID:   id,
		Status:    string(status),
		Timestamp: s.now(),
		Source:    adminSource,
		Notes:     notes,
	})
}

// DeleteOrder removes the items first so a failure never leaves orphan lines.
func (s *AdminService) DeleteOrder(ctx context.Context, id string) error {
	if _, err := s.orders.Get(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := s.items.DeleteByOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.log.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// Stats is the dashboard summary.
type Stats struct {
	Products int            `json:"products"`
	Orders   int            `json:"orders"`
	Revenue  int64          `json:"revenue"`
	Recent   []domain.Order `json:"recent_orders"`
}

// Stats counts products and orders. Cancelled orders bring no revenue.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.products.List(ctx, ports.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	st := &Stats{Products: len(products), Orders: len(orders)}
	for _, o := range orders {
		if o.Status != domain.StatusCancelled {
			st.Revenue += o.TotalPrice
		}
	}
	st.Recent = orders[:min(recentOrders, len(orders))]
	return st, nil
}

// ProductSales aggregates the order lines of one product.
type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	TimesOrdered int    `json:"times_ordered"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// ProductStats lists every product with its sales, best revenue first.
func (s *AdminService) ProductStats(ctx context.Context) ([]ProductSales, error) {
	products, err := s.products.List(ctx, ports.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	byID := make(map[string]*ProductSales, len(products))
	out := make([]ProductSales, len(products))
	for i, p := range products {
		out[i] = ProductSales{ProductID: p.ID, Name: p.Name}
		byID[p.ID] = &out[i]
	}
	for _, it := range items {
		ps, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		ps.TimesOrdered++
		ps.QuantitySold += it.Quantity
		ps.Revenue += it.LineTotal()
	}

	slices.SortStableFunc(out, func(a, b ProductSales) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	return out, nil
}
