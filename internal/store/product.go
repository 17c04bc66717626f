package store

import (
	"context"

	"github.com/phrazzld/marketplace-api/internal/domain"
)

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	// Search matches products whose title contains it, case-insensitively.
	Search string

	// Category matches products whose category equals it exactly.
	Category string
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product and assigns its ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	// Returns ErrProductNotFound if the product does not exist or the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Find returns all products matching the filter, in store order.
	Find(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// Update writes the non-nil changes to the product and returns the stored result.
	// Returns ErrProductNotFound if the product no longer exists.
	Update(ctx context.Context, id string, changes domain.ProductChanges) (*domain.Product, error)

	// Delete removes a product.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id string) error
}
