package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// EventRepository implements ports.OrderEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.OrderEventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

// InsertEvent persists a status event to the status_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.OrderStatusEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"order_id":     event.OrderID,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}
	if event.Notes != "" {
		doc["notes"] = event.Notes
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
