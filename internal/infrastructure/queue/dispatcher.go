// Package queue runs order status events through a sharded worker pool.
package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/api/metrics"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

const (
	defaultWorkers = 4
	shardBuffer    = 256
)

// Dispatcher fans events out to a fixed set of workers. Every event for one
// order lands on the same shard, so an order sees its events in arrival order.
type Dispatcher struct {
	shards  []chan ports.OrderStatusEventInput
	service ports.OrderEventService
	log     zerolog.Logger

	stopped chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher returns a dispatcher with numWorkers shards, or
// defaultWorkers when numWorkers is not positive.
func NewDispatcher(numWorkers int, service ports.OrderEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		shards:  make([]chan ports.OrderStatusEventInput, numWorkers),
		service: service,
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range d.shards {
		d.shards[i] = make(chan ports.OrderStatusEventInput, shardBuffer)
	}
	return d
}

// Start launches the workers. They stop, and Enqueue starts failing with
// ports.ErrQueueClosed, once ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(len(d.shards) + 1)
	go func() {
		defer d.wg.Done()
		<-ctx.Done()
		close(d.stopped)
	}()
	for i, ch := range d.shards {
		go d.work(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands event to its shard, blocking while the shard is full.
func (d *Dispatcher) Enqueue(ctx context.Context, event ports.OrderStatusEventInput) error {
	select {
	case <-d.stopped:
		return ports.ErrQueueClosed
	default:
	}

	idx := d.shardFor(event.OrderID)
	select {
	case d.shards[idx] <- event:
	case <-d.stopped:
		return ports.ErrQueueClosed
	case <-ctx.Done():
		return fmt.Errorf("enqueue order %s: %w", event.OrderID, ctx.Err())
	}
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.shards[idx])))
	return nil
}

// EnqueueBatch enqueues events in order and reports how many were accepted
// before the first failure.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, events []ports.OrderStatusEventInput) (int, error) {
	for i, e := range events {
		if err := d.Enqueue(ctx, e); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

func (d *Dispatcher) shardFor(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.shards)))
}

func (d *Dispatcher) work(ctx context.Context, id int, ch <-chan ports.OrderStatusEventInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	log := d.log.With().Int("worker_id", id).Logger()

	for {
		select {
		case <-ctx.Done():
			if n := len(ch); n > 0 {
				log.Warn().Int("pending", n).Msg("worker stopped with queued events")
			}
			return
		case event := <-ch:
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, log, event)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, log zerolog.Logger, event ports.OrderStatusEventInput) {
	start := time.Now()
	err := d.service.Process(ctx, event)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.EventsErrorsTotal.WithLabelValues(failureReason(err)).Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(elapsed)
		log.Error().Err(err).
			Str("order_id", event.OrderID).
			Str("status", event.Status).
			Msg("order event failed")
		return
	}
	metrics.EventsProcessedTotal.WithLabelValues(event.Status).Inc()
	metrics.EventProcessingDuration.WithLabelValues(event.Status).Observe(elapsed)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrOrderNotFound):
		return "order_not_found"
	case domain.IsValidation(err):
		return "invalid_status"
	default:
		return "update_failed"
	}
}
