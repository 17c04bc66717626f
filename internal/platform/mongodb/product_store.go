package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductStore implements store.ProductStore on a MongoDB collection.
type MongoProductStore struct {
	coll *mongo.Collection
}

// NewMongoProductStore creates a product store over the products collection of db.
func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection(ProductsCollection)}
}

var _ store.ProductStore = (*MongoProductStore)(nil)

// Create implements store.ProductStore.Create
func (s *MongoProductStore) Create(ctx context.Context, product *domain.Product) error {
	seller, err := primitive.ObjectIDFromHex(product.SellerID)
	if err != nil {
		return store.NewStoreError("product", "create", "seller id is not an ObjectID", store.ErrInvalidEntity)
	}

	images := product.Images
	if images == nil {
		images = []string{}
	}

	res, err := s.coll.InsertOne(ctx, productDocument{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Images:      images,
		SellerID:    seller,
		CreatedAt:   product.CreatedAt,
	})
	if err != nil {
		return store.NewStoreError("product", "create", "failed to insert product", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return store.NewStoreError("product", "create", fmt.Sprintf("unexpected id type %T", res.InsertedID), nil)
	}
	product.ID = oid.Hex()
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *MongoProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrProductNotFound
	}

	var doc productDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindError(err, "get_by_id")
	}
	return doc.toDomain(), nil
}

// Find implements store.ProductStore.Find
func (s *MongoProductStore) Find(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	cur, err := s.coll.Find(ctx, productFilter(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, store.NewStoreError("product", "find", "failed to query products", err)
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("product", "find", "failed to decode products", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// Update implements store.ProductStore.Update
func (s *MongoProductStore) Update(
	ctx context.Context,
	id string,
	changes domain.ProductChanges,
) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrProductNotFound
	}
	if changes.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	var doc productDocument
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		productUpdate(changes),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapFindError(err, "update")
	}
	return doc.toDomain(), nil
}

// Delete implements store.ProductStore.Delete
func (s *MongoProductStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrProductNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return store.NewStoreError("product", "delete", "failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

func mapFindError(err error, operation string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrProductNotFound
	}
	return store.NewStoreError("product", operation, "failed to load product", err)
}
