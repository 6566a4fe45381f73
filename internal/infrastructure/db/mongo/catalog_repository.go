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

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Label       string             `bson:"label"`
	Description string             `bson:"description,omitempty"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoCategory(c *domain.Category) mongoCategory {
	return mongoCategory{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

func (m mongoCategory) toDomain() domain.Category {
	return domain.Category{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Label:       m.Label,
		Description: m.Description,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryRepository implements ports.CategoryRepository using MongoDB.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) ports.CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []mongoCategory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCategory
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoCategory(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	oid, ok := objectID(c.ID)
	if !ok {
		return domain.ErrCategoryNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoCategory(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCategory
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrCategoryNotFound)
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       int64              `bson:"price"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	Composition string             `bson:"composition,omitempty"`
	Image       string             `bson:"image,omitempty"`
	Stock       int                `bson:"stock"`
	Featured    bool               `bson:"featured"`
	IsNew       bool               `bson:"is_new"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		Composition: p.Composition,
		Image:       p.Image,
		Stock:       p.Stock,
		Featured:    p.Featured,
		IsNew:       p.IsNew,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (m mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
		Composition: m.Composition,
		Image:       m.Image,
		Stock:       m.Stock,
		Featured:    m.Featured,
		IsNew:       m.IsNew,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductRepository implements ports.ProductRepository using MongoDB.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ports.ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Featured {
		filter["featured"] = true
	}
	if f.IsNew {
		filter["is_new"] = true
	}

	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]domain.Product, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProduct
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoProduct(p))
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrProductNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoProduct(p))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrProductNotFound)
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	oid, ok := objectID(id)
	if !ok {
		return notFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
