// Package cart owns the shopping cart state machine.
//
// An Engine maps product ids to quantities, keeps one line per product in
// insertion order, clamps every quantity to [1, stock] and writes its state
// through to a durable slot before committing a mutation in memory.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// KeyPrefix is the slot namespace for carts.
const KeyPrefix = "mg-cart:"

// Key returns the slot key for a cart id.
func Key(cartID string) string {
	return KeyPrefix + cartID
}

// Line is one product in the cart. Product is the payload captured when the
// product was last added.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is Quantity × unit price.
func (l Line) Subtotal() int64 {
	return int64(l.Quantity) * l.Product.Price
}

// State is an immutable snapshot of the cart lines.
type State struct {
	Lines []Line `json:"items"`
}

// TotalItems is the sum of all quantities.
func (s State) TotalItems() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of quantity × price over all lines.
func (s State) TotalPrice() int64 {
	var total int64
	for _, l := range s.Lines {
		total += l.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool {
	return len(s.Lines) == 0
}

func (s State) index(productID string) int {
	for i, l := range s.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	return State{Lines: lines}
}

// Engine is the cart of a single visitor.
type Engine struct {
	mu    sync.Mutex
	key   string
	slot  ports.Slot
	state State
	log   zerolog.Logger
}

// New rehydrates the cart stored under key. A missing, unreadable or
// malformed snapshot yields an empty cart.
func New(ctx context.Context, slot ports.Slot, key string, log zerolog.Logger) *Engine {
	e := &Engine{key: key, slot: slot, log: log}

	raw, ok, err := slot.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("cart rehydration failed, starting empty")
	case !ok:
	default:
		st, derr := decode(raw)
		if derr != nil {
			log.Warn().Err(derr).Str("key", key).Msg("corrupt cart snapshot, starting empty")
			break
		}
		e.state = st
	}
	return e
}

func decode(raw []byte) (State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, err
	}
	seen := make(map[string]struct{}, len(st.Lines))
	for _, l := range st.Lines {
		if l.Product.ID == "" || l.Quantity < 1 {
			return State{}, fmt.Errorf("invalid line for product %q", l.Product.ID)
		}
		if _, dup := seen[l.Product.ID]; dup {
			return State{}, fmt.Errorf("duplicate line for product %q", l.Product.ID)
		}
		seen[l.Product.ID] = struct{}{}
	}
	return st, nil
}

// commit persists next and only then makes it the current state.
func (e *Engine) commit(ctx context.Context, next State) error {
	if next.Empty() {
		if err := e.slot.Clear(ctx, e.key); err != nil {
			return fmt.Errorf("cart persist: %w", err)
		}
		e.state = State{}
		return nil
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := e.slot.Set(ctx, e.key, raw); err != nil {
		return fmt.Errorf("cart persist: %w", err)
	}
	e.state = next
	return nil
}

// Add puts quantity units of p in the cart. Requests beyond stock are
// clamped silently; an out-of-stock product is ignored.
func (e *Engine) Add(ctx context.Context, p domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if !p.InStock() {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.clone()
	if i := next.index(p.ID); i >= 0 {
		next.Lines[i] = Line{Product: p, Quantity: clamp(next.Lines[i].Quantity+quantity, p.Stock)}
	} else {
		next.Lines = append(next.Lines, Line{Product: p, Quantity: clamp(quantity, p.Stock)})
	}
	return e.commit(ctx, next)
}

// Remove deletes the product's line. Unknown ids are a no-op.
func (e *Engine) Remove(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remove(ctx, productID)
}

func (e *Engine) remove(ctx context.Context, productID string) error {
	i := e.state.index(productID)
	if i < 0 {
		return nil
	}
	next := e.state.clone()
	next.Lines = append(next.Lines[:i], next.Lines[i+1:]...)
	return e.commit(ctx, next)
}

// UpdateQuantity replaces the line quantity, clamped to the stock of the
// stored product. A quantity of zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return e.remove(ctx, productID)
	}
	i := e.state.index(productID)
	if i < 0 {
		return nil
	}
	next := e.state.clone()
	next.Lines[i].Quantity = clamp(quantity, next.Lines[i].Product.Stock)
	return e.commit(ctx, next)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.commit(ctx, State{})
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Lines returns the lines in insertion order.
func (e *Engine) Lines() []Line {
	return e.Snapshot().Lines
}

// Quantity returns the quantity held for productID, 0 when absent.
func (e *Engine) Quantity(productID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.state.index(productID); i >= 0 {
		return e.state.Lines[i].Quantity
	}
	return 0
}

func (e *Engine) TotalItems() int {
	return e.Snapshot().TotalItems()
}

func (e *Engine) TotalPrice() int64 {
	return e.Snapshot().TotalPrice()
}

func (e *Engine) Empty() bool {
	return e.Snapshot().Empty()
}

// clamp bounds q to [1, stock]. Callers guarantee stock >= 1 on insert;
// a stored snapshot whose stock dropped to 0 keeps a single unit.
func clamp(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}
