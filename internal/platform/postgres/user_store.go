package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
)

const userColumns = "id, username, email, hashed_password, profile_picture, created_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "hashed password is required", store.ErrInvalidEntity)
	}

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, hashed_password, profile_picture, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, user.Username, user.Email, user.HashedPassword, user.ProfilePicture, user.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			return mapped
		}
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}

	user.ID = id.String()
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", uid)
	return scanUser(row, "get_by_id")
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row, "get_by_email")
}

// GetUsernames implements store.UserStore.GetUsernames
func (s *PostgresUserStore) GetUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))

	args := make([]any, 0, len(ids))
	placeholders := make([]string, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		uid, err := uuid.Parse(id)
		if err != nil || seen[uid] {
			continue
		}
		seen[uid] = true
		args = append(args, uid)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	if len(args) == 0 {
		return names, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username FROM users WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return nil, store.NewStoreError("user", "get_usernames", "failed to query usernames", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, store.NewStoreError("user", "get_usernames", "failed to scan row", err)
		}
		names[id] = username
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "get_usernames", "failed to iterate rows", err)
	}

	return names, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, operation string) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.ProfilePicture, &u.CreatedAt)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", operation, "failed to load user", mapped)
	}
	return &u, nil
}
