package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProductID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testSellerID  = "0b4e3c4a-1f2d-4c8e-9a3b-5d6e7f8a9b0c"
)

var productRowColumns = []string{"id", "title", "description", "price", "category", "images", "seller_id", "created_at"}

func newMockDB(t *testing.T) (*PostgresProductStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresProductStore(db), mock
}

func TestPostgresProductStore_Create(t *testing.T) {
	s, mock := newMockDB(t)
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(sqlmock.AnyArg(), "Lamp", "Bright", 10.5, "home", []byte(`["a.png"]`), testSellerID, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &domain.Product{
		Title:       "Lamp",
		Description: "Bright",
		Price:       10.5,
		Category:    "home",
		Images:      []string{"a.png"},
		SellerID:    testSellerID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, s.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_CreateRejectsBadSeller(t *testing.T) {
	s, mock := newMockDB(t)

	err := s.Create(context.Background(), &domain.Product{Title: "Lamp", SellerID: "not-a-uuid"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			id:   testProductID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
					WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows(productRowColumns).
						AddRow(testProductID, "Lamp", "Bright", 10.5, "home", []byte(`["a.png"]`), testSellerID, createdAt))
			},
		},
		{
			name: "missing",
			id:   testProductID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
					WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows(productRowColumns))
			},
			wantErr: store.ErrProductNotFound,
		},
		{
			name:    "malformed id never reaches the database",
			id:      "12345",
			setup:   func(mock sqlmock.Sqlmock) {},
			wantErr: store.ErrProductNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockDB(t)
			tc.setup(mock)

			p, err := s.GetByID(context.Background(), tc.id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testProductID, p.ID)
				assert.Equal(t, []string{"a.png"}, p.Images)
				assert.Equal(t, testSellerID, p.SellerID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresProductStore_Find(t *testing.T) {
	tests := []struct {
		name   string
		filter store.ProductFilter
		query  string
		args   []driver.Value
	}{
		{
			name:  "no filter",
			query: "FROM products ORDER BY created_at, id",
		},
		{
			name:   "search",
			filter: store.ProductFilter{Search: "lamp"},
			query:  "FROM products WHERE strpos(lower(title), lower($1)) > 0 ORDER BY",
			args:   []driver.Value{"lamp"},
		},
		{
			name:   "category",
			filter: store.ProductFilter{Category: "home"},
			query:  "FROM products WHERE category = $1 ORDER BY",
			args:   []driver.Value{"home"},
		},
		{
			name:   "search and category",
			filter: store.ProductFilter{Search: "a.b", Category: "home"},
			query:  "WHERE strpos(lower(title), lower($1)) > 0 AND category = $2",
			args:   []driver.Value{"a.b", "home"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockDB(t)

			expect := mock.ExpectQuery(regexp.QuoteMeta(tc.query))
			if len(tc.args) > 0 {
				expect = expect.WithArgs(tc.args...)
			}
			expect.WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow(testProductID, "Lamp", "Bright", 10.5, "home", []byte(`[]`), testSellerID, time.Now()))

			products, err := s.Find(context.Background(), tc.filter)
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.NotNil(t, products[0].Images)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresProductStore_Update(t *testing.T) {
	s, mock := newMockDB(t)
	title := "New"
	price := 0.0

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET title = $1, price = $2 WHERE id = $3 RETURNING")).
		WithArgs("New", 0.0, testProductID).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(testProductID, "New", "Bright", 0.0, "home", []byte(`["a.png"]`), testSellerID, time.Now()))

	p, err := s.Update(context.Background(), testProductID, domain.ProductChanges{Title: &title, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, 0.0, p.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_UpdateMissing(t *testing.T) {
	s, mock := newMockDB(t)
	title := "New"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET title = $1 WHERE id = $2")).
		WithArgs("New", testProductID).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := s.Update(context.Background(), testProductID, domain.ProductChanges{Title: &title})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: store.ErrProductNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
				WithArgs(testProductID).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := s.Delete(context.Background(), testProductID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresProductStore_DeleteDatabaseError(t *testing.T) {
	s, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnError(errors.New("connection reset"))

	err := s.Delete(context.Background(), testProductID)
	require.Error(t, err)
	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete", storeErr.Operation)
}
