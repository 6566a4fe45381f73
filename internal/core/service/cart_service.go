package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/cart"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// CartService runs cart operations against the slot. Each call rehydrates a
// cart.Engine under that cart's lock, so the slot stays the only copy of a
// cart and an expired slot key means an empty cart. Locks live only while a
// call holds or waits on them.
type CartService struct {
	slot     ports.Slot
	products ports.ProductRepository
	log      zerolog.Logger

	mu    sync.Mutex
	locks map[string]*cartLock
}

type cartLock struct {
	mu   sync.Mutex
	refs int
}

func NewCartService(slot ports.Slot, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{
		slot:     slot,
		products: products,
		log:      log,
		locks:    make(map[string]*cartLock),
	}
}

func (s *CartService) acquire(cartID string) *cartLock {
	s.mu.Lock()
	l, ok := s.locks[cartID]
	if !ok {
		l = &cartLock{}
		s.locks[cartID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *CartService) release(cartID string, l *cartLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, cartID)
	}
	s.mu.Unlock()
}

// with loads the cart, applies fn and returns the resulting state.
func (s *CartService) with(ctx context.Context, cartID string, fn func(*cart.Engine) error) (cart.State, error) {
	l := s.acquire(cartID)
	defer s.release(cartID, l)

	e := cart.New(ctx, s.slot, cart.Key(cartID), s.log.With().Str("cart_id", cartID).Logger())
	if fn != nil {
		if err := fn(e); err != nil {
			return cart.State{}, err
		}
	}
	return e.Snapshot(), nil
}

// Snapshot returns the current cart state.
func (s *CartService) Snapshot(ctx context.Context, cartID string) cart.State {
	st, _ := s.with(ctx, cartID, nil)
	return st
}

// Add looks the product up and adds quantity units. A store failure leaves
// the cart unchanged.
func (s *CartService) Add(ctx context.Context, cartID, productID string, quantity int) (cart.State, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return cart.State{}, fmt.Errorf("add to cart: %w", err)
	}
	return s.with(ctx, cartID, func(e *cart.Engine) error {
		return e.Add(ctx, *p, quantity)
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (cart.State, error) {
	return s.with(ctx, cartID, func(e *cart.Engine) error {
		return e.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *CartService) Remove(ctx context.Context, cartID, productID string) (cart.State, error) {
	return s.with(ctx, cartID, func(e *cart.Engine) error {
		return e.Remove(ctx, productID)
	})
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	_, err := s.with(ctx, cartID, func(e *cart.Engine) error {
		return e.Clear(ctx)
	})
	return err
}
