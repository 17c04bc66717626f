package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing.
//
// Without function overrides it behaves like a small in-memory store, which is
// enough for most service tests. The call counters let tests assert that a
// rejected request never reached the store.
type MockProductStore struct {
	CreateFn  func(ctx context.Context, product *domain.Product) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Product, error)
	FindFn    func(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error)
	UpdateFn  func(ctx context.Context, id string, changes domain.ProductChanges) (*domain.Product, error)
	DeleteFn  func(ctx context.Context, id string) error

	// Products holds the default data, in insertion order.
	Products []*domain.Product

	CreateCallCount  int
	GetByIDCallCount int
	FindCallCount    int
	UpdateCallCount  int
	DeleteCallCount  int

	// LastFilter records the filter passed to the most recent Find call
	LastFilter store.ProductFilter

	mu     sync.Mutex
	nextID int
}

// NewMockProductStore creates a mock store seeded with products.
func NewMockProductStore(products ...*domain.Product) *MockProductStore {
	return &MockProductStore{Products: products}
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	m.CreateCallCount++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	product.ID = "product-" + strconv.Itoa(m.nextID)
	m.Products = append(m.Products, copyProduct(product))
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	m.GetByIDCallCount++
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		return copyProduct(m.Products[i]), nil
	}
	return nil, store.ErrProductNotFound
}

// Find implements the ProductStore interface
func (m *MockProductStore) Find(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	m.FindCallCount++
	m.LastFilter = filter
	m.mu.Unlock()

	if m.FindFn != nil {
		return m.FindFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(filter.Search)
	out := make([]*domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, copyProduct(p))
	}
	return out, nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, id string, changes domain.ProductChanges) (*domain.Product, error) {
	m.mu.Lock()
	m.UpdateCallCount++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, changes)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, store.ErrProductNotFound
	}
	changes.ApplyTo(m.Products[i])
	return copyProduct(m.Products[i]), nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.DeleteCallCount++
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return store.ErrProductNotFound
	}
	m.Products = append(m.Products[:i], m.Products[i+1:]...)
	return nil
}

func (m *MockProductStore) indexOf(id string) int {
	for i, p := range m.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func copyProduct(p *domain.Product) *domain.Product {
	c := *p
	c.Images = make([]string, len(p.Images))
	copy(c.Images, p.Images)
	c.Seller = nil
	return &c
}
