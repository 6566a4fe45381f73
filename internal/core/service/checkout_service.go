package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/cart"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/handoff"
	"github.com/mgluxury/boutique/internal/core/money"
	"github.com/mgluxury/boutique/internal/core/ports"
)

const defaultPersistTimeout = 5 * time.Second

// CartStore is the part of CartService checkout relies on.
type CartStore interface {
	Snapshot(ctx context.Context, cartID string) cart.State
	Clear(ctx context.Context, cartID string) error
}

// CheckoutConfig carries the handoff and persistence settings.
type CheckoutConfig struct {
	Recipient      string
	PersistTimeout time.Duration
	Formatter      money.Formatter
}

// CheckoutInput is the customer form plus the cart to submit.
type CheckoutInput struct {
	CartID  string
	UserID  string
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CheckoutResult is the confirmation state returned to the customer.
type CheckoutResult struct {
	Order *domain.Order
	// Persisted is true when the order header was stored; Complete when its
	// items were stored too.
	Persisted   bool
	Complete    bool
	Message     string
	HandoffURL  string
	CartCleared bool
	// Warning is a non-fatal notice for the customer, set when persistence
	// or the handoff failed.
	Warning string
}

// CheckoutService turns a cart and a customer form into an order and a
// messaging handoff.
type CheckoutService struct {
	carts  CartStore
	orders ports.OrderRepository
	items  ports.OrderItemRepository
	cfg    CheckoutConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewCheckoutService(carts CartStore, orders ports.OrderRepository, items ports.OrderItemRepository, cfg CheckoutConfig, log zerolog.Logger) *CheckoutService {
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = defaultPersistTimeout
	}
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		items:  items,
		cfg:    cfg,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// placeholderEmail mirrors the address the storefront invents for
// customers who order through the messaging app.
func placeholderEmail(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), ".") + "@whatsapp.local"
}

func validateCheckout(in CheckoutInput, st cart.State) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "le nom est obligatoire")
	}
	if strings.TrimSpace(in.Phone) == "" {
		verr.Add("phone", "le numéro de téléphone est obligatoire")
	}
	if strings.TrimSpace(in.Address) == "" {
		verr.Add("address", "l'adresse de livraison est obligatoire")
	}
	if st.Empty() {
		verr.Add("cart", domain.ErrEmptyCart.Error())
	}
	return verr.OrNil()
}

// Submit validates the form, persists the order best-effort within the
// configured timeout, then builds the handoff link whatever the outcome of
// persistence. The cart is cleared only once the order is stored and the
// link is ready.
func (s *CheckoutService) Submit(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	st := s.carts.Snapshot(ctx, in.CartID)
	if err := validateCheckout(in, st); err != nil {
		return nil, err
	}

	order := s.buildOrder(in, st)
	res := &CheckoutResult{Order: order}
	var warnings []string

	res.Persisted, res.Complete = s.persist(ctx, order)
	switch {
	case !res.Persisted:
		warnings = append(warnings, "La commande n'a pas pu être enregistrée, elle est transmise par message.")
	case !res.Complete:
		warnings = append(warnings, "La commande a été enregistrée partiellement.")
	}

	res.Message = handoff.Message(summarize(in, st), s.cfg.Formatter)
	link, err := handoff.Link(s.cfg.Recipient, res.Message)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", order.ID).Msg("handoff failed")
		warnings = append(warnings, "Le lien de messagerie n'a pas pu être préparé.")
	}
	res.HandoffURL = link

	if res.Persisted && link != "" {
		if err := s.carts.Clear(ctx, in.CartID); err != nil {
			s.log.Warn().Err(err).Str("cart_id", in.CartID).Msg("failed to clear cart after checkout")
		} else {
			res.CartCleared = true
		}
	}

	res.Warning = strings.Join(warnings, " ")
	s.log.Info().
		Str("order_id", order.ID).
		Int64("total", order.TotalPrice).
		Bool("persisted", res.Persisted).
		Bool("complete", res.Complete).
		Msg("checkout submitted")
	return res, nil
}

func (s *CheckoutService) buildOrder(in CheckoutInput, st cart.State) *domain.Order {
	now := s.now()
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = placeholderEmail(in.Name)
	}

	items := make([]domain.OrderItem, len(st.Lines))
	for i, l := range st.Lines {
		items[i] = domain.OrderItem{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
			CreatedAt: now,
		}
	}

	return &domain.Order{
		UserID:        in.UserID,
		CustomerName:  strings.TrimSpace(in.Name),
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Notes:         strings.TrimSpace(in.Notes),
		Items:         items,
		TotalPrice:    st.TotalPrice(),
		Status:        domain.InitialOrderStatus,
		Date:          now,
		CreatedAt:     now,
		UpdatedAt:     now,
		StatusHistory: []domain.StatusHistoryEntry{{Status: domain.InitialOrderStatus, Timestamp: now, Notes: "checkout"}},
	}
}

// persist stores the header then the items. Failures are logged, never
// returned: the customer's order still goes out through the handoff.
func (s *CheckoutService) persist(ctx context.Context, order *domain.Order) (header, items bool) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PersistTimeout)
	defer cancel()

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).
			Bool("timeout", errors.Is(err, context.DeadlineExceeded)).
			Msg("order header persistence failed")
		return false, false
	}
	if err := s.items.CreateMany(ctx, order.ID, order.Items); err != nil {
		s.log.Error().Err(err).
			Str("order_id", order.ID).
			Bool("timeout", errors.Is(err, context.DeadlineExceeded)).
			Msg("order items persistence failed")
		return true, false
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return true, true
}

func summarize(in CheckoutInput, st cart.State) handoff.Summary {
	items := make([]handoff.Item, len(st.Lines))
	for i, l := range st.Lines {
		items[i] = handoff.Item{Name: l.Product.Name, Quantity: l.Quantity, LineTotal: l.Subtotal()}
	}
	return handoff.Summary{
		Customer: handoff.Customer{
			Name:    strings.TrimSpace(in.Name),
			Phone:   strings.TrimSpace(in.Phone),
			Address: strings.TrimSpace(in.Address),
			Notes:   strings.TrimSpace(in.Notes),
		},
		Items: items,
		Total: st.TotalPrice(),
	}
}
