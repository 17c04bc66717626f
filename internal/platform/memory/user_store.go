package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UserStore is an in-memory implementation of store.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
	tracer  trace.Tracer
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty user store.
func NewUserStore(tracer trace.Tracer) *UserStore {
	return &UserStore{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		tracer:  tracer,
	}
}

// Create stores a new user. Email and username must be unique.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	_, span := s.tracer.Start(ctx, "UserStore.Create")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		span.SetStatus(codes.Error, "email exists")
		return store.ErrEmailExists
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			span.SetStatus(codes.Error, "username exists")
			return store.ErrUsernameExists
		}
	}

	user.ID = uuid.NewString()
	stored := *user
	stored.Password = ""
	s.users[user.ID] = &stored
	s.byEmail[user.Email] = user.ID

	span.SetAttributes(attribute.String("user.id", user.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	_, span := s.tracer.Start(ctx, "UserStore.GetByID")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		span.SetStatus(codes.Error, "user not found")
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail retrieves a user by email address.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	_, span := s.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		span.SetStatus(codes.Error, "user not found")
		return nil, store.ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

// GetUsernames resolves ids to usernames, skipping unknown ids.
func (s *UserStore) GetUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	_, span := s.tracer.Start(ctx, "UserStore.GetUsernames")
	defer span.End()
	span.SetAttributes(attribute.Int("user.count", len(ids)))

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			names[id] = user.Username
		}
	}
	return names, nil
}
