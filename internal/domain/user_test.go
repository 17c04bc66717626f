package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	user, err := NewUser("  alice ", " Alice@Example.COM ", "secret1", "", now)
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "secret1", user.Password)
	assert.Empty(t, user.ProfilePicture)
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
	assert.True(t, user.CreatedAt.Equal(now))
}

func TestNewUser_ReportsAllFailures(t *testing.T) {
	t.Parallel()

	_, err := NewUser(" ", "not-an-email", "12345", "", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"username", "email", "password"}, fields)
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "stored user with hash",
			user:    User{Username: "bob", Email: "bob@example.com", HashedPassword: "$2a$10$hash"},
			wantErr: false,
		},
		{
			name:    "no password and no hash",
			user:    User{Username: "bob", Email: "bob@example.com"},
			wantErr: true,
		},
		{
			name:    "email with display name",
			user:    User{Username: "bob", Email: "Bob <bob@example.com>", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "minimum password length",
			user:    User{Username: "bob", Email: "bob@example.com", Password: "123456"},
			wantErr: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
