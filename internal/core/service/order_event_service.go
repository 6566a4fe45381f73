package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

type orderEventService struct {
	orders ports.OrderRepository
	events ports.OrderEventRepository
	dedup  ports.DedupChecker
	log    zerolog.Logger
	now    func() time.Time
}

// NewOrderEventService returns an OrderEventService implementation.
func NewOrderEventService(
	orders ports.OrderRepository,
	events ports.OrderEventRepository,
	dedup ports.DedupChecker,
	log zerolog.Logger,
) ports.OrderEventService {
	return &orderEventService{
		orders: orders,
		events: events,
		dedup:  dedup,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DedupKey identifies a status event for idempotency.
func DedupKey(orderID string, status domain.OrderStatus, ts time.Time) string {
	return fmt.Sprintf("dedup:order:%s:%s:%d", orderID, status, ts.Unix())
}

// Process validates, deduplicates, and applies a single status event.
func (s *orderEventService) Process(ctx context.Context, in ports.OrderStatusEventInput) error {
	next, ok := domain.ParseOrderStatus(in.Status)
	if !ok {
		return domain.NewValidationError("status", fmt.Sprintf("statut inconnu %q", in.Status))
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	key := DedupKey(in.OrderID, next, ts)

	isDup, err := s.dedup.IsDuplicate(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", in.OrderID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("order_id", in.OrderID).Str("status", string(next)).Msg("duplicate event skipped")
		return nil
	}

	order, err := s.orders.Get(ctx, in.OrderID)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	entry := domain.StatusHistoryEntry{Status: next, Timestamp: ts, Notes: in.Notes}
	if err := s.orders.UpdateStatus(ctx, in.OrderID, entry); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}
	// Marked after the update lands; failed writes stay retryable.
	if markErr := s.dedup.Mark(ctx, key); markErr != nil {
		s.log.Warn().Err(markErr).Str("order_id", in.OrderID).Msg("failed to set dedup key")
	}

	audit := &domain.OrderStatusEvent{
		OrderID:   in.OrderID,
		Status:    next,
		Timestamp: ts,
		Source:    in.Source,
		Notes:     in.Notes,
	}
	if err := s.events.InsertEvent(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("order_id", in.OrderID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("order_id", in.OrderID).
		Str("from", string(order.Status)).
		Str("status", string(next)).
		Str("source", in.Source).
		Msg("order status updated")

	return nil
}
