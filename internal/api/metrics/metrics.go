// Package metrics defines and registers all custom Prometheus metrics for the
// MG Luxury boutique. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on import; the
// router exposes them on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boutique"

// ── Order event metrics ───────────────────────────────────────────────────────

// EventsProcessedTotal counts status events applied by the dispatcher.
// Label:
//   - status: the status requested by the event (e.g. "confirmed")
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_processed_total",
		Help:      "Total number of order status events successfully processed.",
	},
	[]string{"status"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: "invalid_transition", "order_not_found", "invalid_status" or "update_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_errors_total",
		Help:      "Total number of order status events that failed processing.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single event takes to process.
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_event_processing_duration_seconds",
		Help:      "Duration of order event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)

// ── Storefront metrics ────────────────────────────────────────────────────────

// CheckoutsTotal counts checkout submissions.
// Label:
//   - outcome: "complete", "partial" (items not stored) or "handoff_only"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkouts, by persistence outcome.",
	},
	[]string{"outcome"},
)

// CheckoutAmount observes order totals in whole currency units.
var CheckoutAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_amount",
		Help:      "Order totals submitted at checkout.",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 10),
	},
)

// CartMutationsTotal counts cart operations.
// Label:
//   - op: "add", "update", "remove" or "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// LoginsTotal counts sign-in attempts.
// Label:
//   - result: "success", "rejected" (bad credentials) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ImageUploadsTotal counts product image uploads.
// Label:
//   - result: "success", "rejected" or "failed"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of product image uploads, by result.",
	},
	[]string{"result"},
)
