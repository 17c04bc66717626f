package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/platform/logger"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductStore is an in-memory implementation of store.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	tracer   trace.Tracer
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates an empty product store.
func NewProductStore(tracer trace.Tracer) *ProductStore {
	return &ProductStore{
		products: make(map[string]*domain.Product),
		tracer:   tracer,
	}
}

// Create stores a new product under a freshly generated ID.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "ProductStore.Create")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = uuid.NewString()
	s.products[product.ID] = cloneProduct(product)
	s.order = append(s.order, product.ID)

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.seller_id", product.SellerID),
	)
	logger.FromContext(ctx).DebugContext(ctx, "product created in memory store",
		slog.String("product_id", product.ID))

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a product by ID.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	_, span := s.tracer.Start(ctx, "ProductStore.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		span.RecordError(store.ErrProductNotFound)
		span.SetStatus(codes.Error, "product not found")
		return nil, store.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "")
	return cloneProduct(product), nil
}

// Find returns products matching filter in insertion order.
func (s *ProductStore) Find(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	_, span := s.tracer.Start(ctx, "ProductStore.Find")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	products := make([]*domain.Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, cloneProduct(p))
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "")
	return products, nil
}

// Update merges changes into the stored product.
func (s *ProductStore) Update(
	ctx context.Context,
	id string,
	changes domain.ProductChanges,
) (*domain.Product, error) {
	_, span := s.tracer.Start(ctx, "ProductStore.Update")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		span.RecordError(store.ErrProductNotFound)
		span.SetStatus(codes.Error, "product not found")
		return nil, store.ErrProductNotFound
	}

	changes.ApplyTo(product)

	span.SetStatus(codes.Ok, "")
	return cloneProduct(product), nil
}

// Delete removes a product.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	_, span := s.tracer.Start(ctx, "ProductStore.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		span.RecordError(store.ErrProductNotFound)
		span.SetStatus(codes.Error, "product not found")
		return store.ErrProductNotFound
	}

	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// cloneProduct copies p so callers never share the stored slice.
func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	c.Images = make([]string, len(p.Images))
	copy(c.Images, p.Images)
	c.Seller = nil
	return &c
}
