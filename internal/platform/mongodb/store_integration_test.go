package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// testDatabase connects to MARKET_TEST_MONGO_URL and returns a throwaway database.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MARKET_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("MARKET_TEST_MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri, 5*time.Second)
	require.NoError(t, err)

	db := client.Database("market_test_" + primitive.NewObjectID().Hex())
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoStores_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	users := NewMongoUserStore(db)
	products := NewMongoProductStore(db)

	alice := &domain.User{Username: "alice", Email: "alice@example.com", HashedPassword: "hash", CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, alice))

	err := users.Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com", HashedPassword: "hash"})
	assert.ErrorIs(t, err, store.ErrEmailExists)
	err = users.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", HashedPassword: "hash"})
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	lamp := &domain.Product{Title: "Red Lamp", Description: "d", Price: 10, Category: "home", SellerID: alice.ID, CreatedAt: time.Now()}
	require.NoError(t, products.Create(ctx, lamp))
	chair := &domain.Product{Title: "Chair", Description: "d", Price: 5, Category: "home", SellerID: alice.ID, CreatedAt: time.Now()}
	require.NoError(t, products.Create(ctx, chair))

	found, err := products.Find(ctx, store.ProductFilter{Search: "LAMP"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, lamp.ID, found[0].ID)

	price := 0.0
	updated, err := products.Update(ctx, lamp.ID, domain.ProductChanges{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Price)
	assert.Equal(t, "Red Lamp", updated.Title)

	names, err := users.GetUsernames(ctx, []string{alice.ID, "bad"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{alice.ID: "alice"}, names)

	require.NoError(t, products.Delete(ctx, lamp.ID))
	assert.ErrorIs(t, products.Delete(ctx, lamp.ID), store.ErrProductNotFound)

	_, err = products.GetByID(ctx, "12345")
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}
