package api

import (
	"context"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/service"
	"github.com/phrazzld/marketplace-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// productServiceMock is a testify mock of service.ProductService.
type productServiceMock struct {
	mock.Mock
}

var _ service.ProductService = (*productServiceMock)(nil)

func (m *productServiceMock) CreateProduct(ctx context.Context, sellerID string, in domain.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, sellerID, in)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productServiceMock) ListProducts(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*domain.Product)
	return products, args.Error(1)
}

func (m *productServiceMock) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productServiceMock) UpdateProduct(ctx context.Context, subjectID, id string, patch domain.ProductPatch) (*domain.Product, error) {
	args := m.Called(ctx, subjectID, id, patch)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *productServiceMock) DeleteProduct(ctx context.Context, subjectID, id string) error {
	args := m.Called(ctx, subjectID, id)
	return args.Error(0)
}

// userServiceMock is a testify mock of service.UserService.
type userServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*userServiceMock)(nil)

func (m *userServiceMock) Register(ctx context.Context, username, email, password, profilePicture string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password, profilePicture)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *userServiceMock) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *userServiceMock) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
