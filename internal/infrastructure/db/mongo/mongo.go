package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionCategories = "categories"
	collectionProducts   = "products"
	collectionOrders     = "orders"
	collectionOrderItems = "order_items"
	collectionUsers      = "users"
	collectionEvents     = "status_events"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes the storefront queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	plan := map[string][]mongo.IndexModel{
		collectionCategories: {{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
		collectionProducts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		collectionOrderItems: {{Keys: bson.D{{Key: "order_id", Value: 1}}}},
		collectionUsers:      {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionEvents:     {{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "timestamp", Value: 1}}}},
	}
	for coll, indexes := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure indexes %s: %w", coll, err)
		}
	}
	return nil
}

// objectID parses a hex id. Malformed ids match no document, so callers map
// the false result to their not-found sentinel.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
