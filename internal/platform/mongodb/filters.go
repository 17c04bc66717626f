package mongodb

import (
	"regexp"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productFilter translates a store filter into a query document.
// The search term is quoted so it matches literally, ignoring case.
func productFilter(f store.ProductFilter) bson.M {
	query := bson.M{}
	if f.Search != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	return query
}

// productUpdate builds a $set document for the non-nil changes.
func productUpdate(c domain.ProductChanges) bson.M {
	set := bson.M{}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.Price != nil {
		set["price"] = *c.Price
	}
	if c.Category != nil {
		set["category"] = *c.Category
	}
	if c.Images != nil {
		set["images"] = c.Images
	}
	return bson.M{"$set": set}
}

// objectIDs converts hex ids, dropping malformed and repeated ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil || seen[oid] {
			continue
		}
		seen[oid] = true
		out = append(out, oid)
	}
	return out
}
