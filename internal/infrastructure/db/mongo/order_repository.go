package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

type mongoHistoryEntry struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Notes     string    `bson:"notes,omitempty"`
}

type mongoOrder struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	UserID        string              `bson:"user_id,omitempty"`
	CustomerName  string              `bson:"customer_name"`
	CustomerEmail string              `bson:"customer_email"`
	CustomerPhone string              `bson:"customer_phone"`
	Address       string              `bson:"address"`
	Notes         string              `bson:"notes,omitempty"`
	TotalPrice    int64               `bson:"total_price"`
	Status        string              `bson:"status"`
	Date          time.Time           `bson:"date"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
	StatusHistory []mongoHistoryEntry `bson:"status_history"`
}

func toMongoOrder(o *domain.Order) mongoOrder {
	history := make([]mongoHistoryEntry, len(o.StatusHistory))
	for i, h := range o.StatusHistory {
		history[i] = mongoHistoryEntry{Status: string(h.Status), Timestamp: h.Timestamp.UTC(), Notes: h.Notes}
	}
	return mongoOrder{
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		Notes:         o.Notes,
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		Date:          o.Date.UTC(),
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
		StatusHistory: history,
	}
}

// toDomain tolerates the French labels written by older storefront builds.
func (m mongoOrder) toDomain() domain.Order {
	history := make([]domain.StatusHistoryEntry, len(m.StatusHistory))
	for i, h := range m.StatusHistory {
		history[i] = domain.StatusHistoryEntry{Status: parseStatus(h.Status), Timestamp: h.Timestamp, Notes: h.Notes}
	}
	return domain.Order{
		ID:            m.ID.Hex(),
		UserID:        m.UserID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,
		Address:       m.Address,
		Notes:         m.Notes,
		TotalPrice:    m.TotalPrice,
		Status:        parseStatus(m.Status),
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		StatusHistory: history,
	}
}

func parseStatus(s string) domain.OrderStatus {
	if st, ok := domain.ParseOrderStatus(s); ok {
		return st
	}
	return domain.OrderStatus(s)
}

// OrderRepository implements ports.OrderRepository using MongoDB.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) ports.OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// Create inserts the order header. Items are stored separately.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoOrder(o))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o := doc.toDomain()
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]domain.Order, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// UpdateStatus atomically sets the order status and appends a history entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, entry domain.StatusHistoryEntry) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"status": string(entry.Status), "updated_at": time.Now().UTC()},
		"$push": bson.M{"status_history": mongoHistoryEntry{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			Notes:     entry.Notes,
		}},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrOrderNotFound)
}

type mongoOrderItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OrderID   string             `bson:"order_id"`
	ProductID string             `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	Price     int64              `bson:"price"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m mongoOrderItem) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ID:        m.ID.Hex(),
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}

// OrderItemRepository implements ports.OrderItemRepository using MongoDB.
type OrderItemRepository struct {
	col *mongo.Collection
}

func NewOrderItemRepository(db *mongo.Database) ports.OrderItemRepository {
	return &OrderItemRepository{col: db.Collection(collectionOrderItems)}
}

func (r *OrderItemRepository) CreateMany(ctx context.Context, orderID string, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = mongoOrderItem{
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			CreatedAt: it.CreatedAt.UTC(),
		}
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func (r *OrderItemRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	return r.find(ctx, bson.M{"order_id": orderID})
}

func (r *OrderItemRepository) ListAll(ctx context.Context) ([]domain.OrderItem, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderItemRepository) find(ctx context.Context, filter bson.M) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	var docs []mongoOrderItem
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	out := make([]domain.OrderItem, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *OrderItemRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}
