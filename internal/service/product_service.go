package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/platform/logger"
	"github.com/phrazzld/marketplace-api/internal/redact"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService provides the product catalog operations.
type ProductService interface {
	// CreateProduct validates in and stores a new product owned by sellerID.
	CreateProduct(ctx context.Context, sellerID string, in domain.ProductInput) (*domain.Product, error)

	// ListProducts returns the products matching filter, each with its seller's username.
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error)

	// GetProduct retrieves a product with its seller's username.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// UpdateProduct merges patch into the product if subjectID owns it.
	// Checks run in order: validation, existence, ownership.
	UpdateProduct(ctx context.Context, subjectID, id string, patch domain.ProductPatch) (*domain.Product, error)

	// DeleteProduct removes the product if subjectID owns it.
	DeleteProduct(ctx context.Context, subjectID, id string) error
}

// productServiceImpl implements the ProductService interface
type productServiceImpl struct {
	products   store.ProductStore
	users      store.UserStore
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
	timeFunc   func() time.Time
}

// NewProductService creates a new ProductService.
// It returns an error if either store is nil.
func NewProductService(
	products store.ProductStore,
	users store.UserStore,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) (ProductService, error) {
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	operations, err := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &productServiceImpl{
		products:   products,
		users:      users,
		tracer:     tracer,
		logger:     logger.With(slog.String("component", "product_service")),
		operations: operations,
		timeFunc:   time.Now,
	}, nil
}

// CreateProduct implements ProductService.CreateProduct
func (s *productServiceImpl) CreateProduct(
	ctx context.Context,
	sellerID string,
	in domain.ProductInput,
) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := domain.NewProduct(sellerID, in, s.timeFunc())
	if err != nil {
		s.fail(ctx, span, "create", "validation", err)
		log.Debug("product input rejected", slog.String("error", redact.Error(err)))
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.fail(ctx, span, "create", "store", err)
		log.Error("failed to save product",
			slog.String("error", redact.Error(err)),
			slog.String("seller_id", sellerID))
		return nil, NewProductServiceError("create", "failed to save product", err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	if err := s.attachSellers(ctx, product); err != nil {
		s.fail(ctx, span, "create", "store", err)
		return nil, NewProductServiceError("create", "failed to resolve seller", err)
	}

	log.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("seller_id", sellerID))
	s.succeed(ctx, span, "create")
	return product, nil
}

// ListProducts implements ProductService.ListProducts
func (s *productServiceImpl) ListProducts(
	ctx context.Context,
	filter store.ProductFilter,
) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.search", filter.Search),
		attribute.String("filter.category", filter.Category),
	)
	log := logger.FromContextOrDefault(ctx, s.logger)

	products, err := s.products.Find(ctx, filter)
	if err != nil {
		s.fail(ctx, span, "list", "store", err)
		log.Error("failed to list products", slog.String("error", redact.Error(err)))
		return nil, NewProductServiceError("list", "failed to list products", err)
	}

	if err := s.attachSellers(ctx, products...); err != nil {
		s.fail(ctx, span, "list", "store", err)
		log.Error("failed to resolve sellers", slog.String("error", redact.Error(err)))
		return nil, NewProductServiceError("list", "failed to resolve sellers", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "list")
	return products, nil
}

// GetProduct implements ProductService.GetProduct
func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.load(ctx, span, "get", id)
	if err != nil {
		return nil, err
	}

	if err := s.attachSellers(ctx, product); err != nil {
		s.fail(ctx, span, "get", "store", err)
		return nil, NewProductServiceError("get", "failed to resolve seller", err)
	}

	s.succeed(ctx, span, "get")
	return product, nil
}

// UpdateProduct implements ProductService.UpdateProduct
func (s *productServiceImpl) UpdateProduct(
	ctx context.Context,
	subjectID, id string,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		s.fail(ctx, span, "update", "validation", err)
		return nil, err
	}

	existing, err := s.load(ctx, span, "update", id)
	if err != nil {
		return nil, err
	}

	if !existing.OwnedBy(subjectID) {
		s.fail(ctx, span, "update", "forbidden", ErrNotOwned)
		log.Warn("update rejected, not the seller",
			slog.String("product_id", id),
			slog.String("subject_id", subjectID))
		return nil, ErrNotOwned
	}

	changes := patch.Changes()
	updated := existing
	if !changes.IsEmpty() {
		updated, err = s.products.Update(ctx, id, changes)
		if err != nil {
			if store.IsNotFoundError(err) {
				s.fail(ctx, span, "update", "not_found", err)
				return nil, NewProductServiceError("update", "product not found", store.ErrProductNotFound)
			}
			s.fail(ctx, span, "update", "store", err)
			log.Error("failed to update product",
				slog.String("error", redact.Error(err)),
				slog.String("product_id", id))
			return nil, NewProductServiceError("update", "failed to update product", err)
		}
	}

	if err := s.attachSellers(ctx, updated); err != nil {
		s.fail(ctx, span, "update", "store", err)
		return nil, NewProductServiceError("update", "failed to resolve seller", err)
	}

	log.Info("product updated", slog.String("product_id", id))
	s.succeed(ctx, span, "update")
	return updated, nil
}

// DeleteProduct implements ProductService.DeleteProduct
func (s *productServiceImpl) DeleteProduct(ctx context.Context, subjectID, id string) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.load(ctx, span, "delete", id)
	if err != nil {
		return err
	}

	if !existing.OwnedBy(subjectID) {
		s.fail(ctx, span, "delete", "forbidden", ErrNotOwned)
		log.Warn("delete rejected, not the seller",
			slog.String("product_id", id),
			slog.String("subject_id", subjectID))
		return ErrNotOwned
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			s.fail(ctx, span, "delete", "not_found", err)
			return NewProductServiceError("delete", "product not found", store.ErrProductNotFound)
		}
		s.fail(ctx, span, "delete", "store", err)
		log.Error("failed to delete product",
			slog.String("error", redact.Error(err)),
			slog.String("product_id", id))
		return NewProductServiceError("delete", "failed to delete product", err)
	}

	log.Info("product removed", slog.String("product_id", id))
	s.succeed(ctx, span, "delete")
	return nil
}

// load fetches a product, distinguishing not-found from store failures.
func (s *productServiceImpl) load(
	ctx context.Context,
	span trace.Span,
	operation, id string,
) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err == nil {
		return product, nil
	}

	if store.IsNotFoundError(err) {
		s.fail(ctx, span, operation, "not_found", err)
		return nil, NewProductServiceError(operation, "product not found", store.ErrProductNotFound)
	}

	s.fail(ctx, span, operation, "store", err)
	logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve product",
		slog.String("error", redact.Error(err)),
		slog.String("product_id", id))
	return nil, NewProductServiceError(operation, "failed to retrieve product", err)
}

// attachSellers sets Seller on each product with one username lookup.
// Products whose seller no longer exists are left without one.
func (s *productServiceImpl) attachSellers(ctx context.Context, products ...*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if !seen[p.SellerID] {
			seen[p.SellerID] = true
			ids = append(ids, p.SellerID)
		}
	}

	names, err := s.users.GetUsernames(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range products {
		if name, ok := names[p.SellerID]; ok {
			p.Seller = &domain.Seller{ID: p.SellerID, Username: name}
		}
	}
	return nil
}

func (s *productServiceImpl) succeed(ctx context.Context, span trace.Span, operation string) {
	span.SetStatus(codes.Ok, "")
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", "success"),
	))
}

func (s *productServiceImpl) fail(ctx context.Context, span trace.Span, operation, reason string, err error) {
	if reason == "store" {
		span.RecordError(errors.New(redact.Error(err)))
	}
	span.SetStatus(codes.Error, reason)
	s.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", "failure"),
		attribute.String("reason", reason),
	))
}
