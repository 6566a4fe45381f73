package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// InitialOrderStatus is the status every submitted order starts in.
const InitialOrderStatus = StatusPending

// validTransitions defines the allowed state machine transitions.
// Orders still in in_progress come from the storefront's earlier revision
// and stay approvable.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress, StatusConfirmed, StatusCancelled},
	StatusInProgress: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

var statusLabels = map[OrderStatus]string{
	StatusPending:    "en attente",
	StatusInProgress: "en cours",
	StatusConfirmed:  "confirmée",
	StatusShipped:    "expédiée",
	StatusDelivered:  "livrée",
	StatusCancelled:  "annulée",
}

// ParseOrderStatus accepts both the canonical value and the French label
// persisted by older clients.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	if _, ok := statusLabels[OrderStatus(s)]; ok {
		return OrderStatus(s), true
	}
	for st, label := range statusLabels {
		if label == s {
			return st, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Label is the French display label shown in the back office.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// OrderItem is a line of an order. Price is the unit price captured when the
// order was placed.
type OrderItem struct {
	ID        string    `json:"id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LineTotal is Quantity × Price.
func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.Price
}

// StatusHistoryEntry records a single status transition on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// Order is the aggregate persisted by checkout and managed by admins.
type Order struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id,omitempty"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	CustomerPhone string               `json:"customer_phone"`
	Address       string               `json:"address"`
	Notes         string               `json:"notes,omitempty"`
	Items         []OrderItem          `json:"items"`
	TotalPrice    int64                `json:"total_price"`
	Status        OrderStatus          `json:"status"`
	Date          time.Time            `json:"date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	StatusHistory []StatusHistoryEntry `json:"status_history,omitempty"`
}

// OrderStatusEvent is a status change request for an order, either issued
// by an admin or ingested in batch.
type OrderStatusEvent struct {
	OrderID   string
	Status    OrderStatus
	Timestamp time.Time
	Source    string
	Notes     string
}
