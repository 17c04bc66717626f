package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
)

const productColumns = "id, title, description, price, category, images, seller_id, created_at"

// PostgresProductStore implements store.ProductStore on PostgreSQL.
// Images are kept in a JSONB column.
type PostgresProductStore struct {
	db store.DBTX
}

// NewPostgresProductStore creates a product store over db.
func NewPostgresProductStore(db store.DBTX) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	sellerID, err := uuid.Parse(product.SellerID)
	if err != nil {
		return store.NewStoreError("product", "create", "seller id is not a UUID", store.ErrInvalidEntity)
	}

	images, err := encodeImages(product.Images)
	if err != nil {
		return store.NewStoreError("product", "create", "failed to encode images", err)
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO products (id, title, description, price, category, images, seller_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, product.Title, product.Description, product.Price, product.Category, images, sellerID, product.CreatedAt)
	if err != nil {
		return store.NewStoreError("product", "create", "failed to insert product", MapError(err))
	}

	product.ID = id.String()
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrProductNotFound
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", pid)
	return scanProduct(row, "get_by_id")
}

// Find implements store.ProductStore.Find. Search is a literal, case-insensitive
// substring match on the title.
func (s *PostgresProductStore) Find(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, filter.Search)
		where = append(where, fmt.Sprintf("strpos(lower(title), lower($%d)) > 0", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("product", "find", "failed to query products", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows, "find")
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("product", "find", "failed to iterate rows", err)
	}

	return products, nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(
	ctx context.Context,
	id string,
	changes domain.ProductChanges,
) (*domain.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrProductNotFound
	}
	if changes.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.Title != nil {
		set("title", *changes.Title)
	}
	if changes.Description != nil {
		set("description", *changes.Description)
	}
	if changes.Price != nil {
		set("price", *changes.Price)
	}
	if changes.Category != nil {
		set("category", *changes.Category)
	}
	if changes.Images != nil {
		images, err := encodeImages(changes.Images)
		if err != nil {
			return nil, store.NewStoreError("product", "update", "failed to encode images", err)
		}
		set("images", images)
	}

	args = append(args, pid)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns)

	row := s.db.QueryRowContext(ctx, query, args...)
	return scanProduct(row, "update")
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return store.ErrProductNotFound
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", pid)
	if err != nil {
		return store.NewStoreError("product", "delete", "failed to delete product", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrProductNotFound)
}

func scanProduct(row rowScanner, operation string) (*domain.Product, error) {
	var (
		p      domain.Product
		images []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &images, &p.SellerID, &p.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrProductNotFound
		}
		return nil, store.NewStoreError("product", operation, "failed to load product", mapped)
	}

	p.Images = make([]string, 0)
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, store.NewStoreError("product", operation, "failed to decode images", err)
		}
		if p.Images == nil {
			p.Images = make([]string, 0)
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}
