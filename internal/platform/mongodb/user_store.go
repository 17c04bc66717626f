package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore implements store.UserStore on a MongoDB collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore creates a user store over the users collection of db.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(UsersCollection)}
}

var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "hashed password is required", store.ErrInvalidEntity)
	}

	res, err := s.coll.InsertOne(ctx, newUserDocument(user))
	if err != nil {
		if dup := mapDuplicateKey(err); dup != nil {
			return dup
		}
		return store.NewStoreError("user", "create", "failed to insert user", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return store.NewStoreError("user", "create", fmt.Sprintf("unexpected id type %T", res.InsertedID), nil)
	}
	user.ID = oid.Hex()
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid}, "get_by_id")
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, "get_by_email")
}

// GetUsernames implements store.UserStore.GetUsernames
func (s *MongoUserStore) GetUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return names, nil
	}

	cur, err := s.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"username": 1}))
	if err != nil {
		return nil, store.NewStoreError("user", "get_usernames", "failed to query usernames", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("user", "get_usernames", "failed to decode users", err)
	}
	for _, d := range docs {
		names[d.ID.Hex()] = d.Username
	}
	return names, nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M, operation string) (*domain.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", operation, "failed to load user", err)
	}
	return doc.toDomain(), nil
}

// mapDuplicateKey names the unique index a duplicate-key error violated.
// It returns nil for any other error.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "username_unique"):
		return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
	case strings.Contains(msg, "email_unique"):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
}
