package domain

import (
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest plaintext password accepted at registration.
const MinPasswordLength = 6

// User represents a registered marketplace account.
type User struct {
	ID             string
	Username       string
	Email          string
	Password       string // Plaintext password, only set during registration
	HashedPassword string
	ProfilePicture string
	CreatedAt      time.Time
}

// NewUser creates a User from registration data. Username and email are trimmed
// and the email is lowercased before validation.
//
// NOTE: The caller is responsible for hashing Password and clearing it before the
// user is stored.
func NewUser(username, email, password, profilePicture string, now time.Time) (*User, error) {
	user := &User{
		Username:       strings.TrimSpace(username),
		Email:          NormalizeEmail(email),
		Password:       password,
		ProfilePicture: strings.TrimSpace(profilePicture),
		CreatedAt:      now.UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user fields and reports all failures together.
// A user needs either a plaintext password (registration) or a hash (stored user).
func (u *User) Validate() error {
	var errs ValidationErrors

	if u.Username == "" {
		errs.Add("username", "Username is required")
	}

	switch {
	case u.Email == "":
		errs.Add("email", "Email is required")
	case !validEmail(u.Email):
		errs.Add("email", "Please include a valid email")
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			errs.Add("password", "Password must be at least 6 characters")
		}
	} else if u.HashedPassword == "" {
		errs.Add("password", "Password is required")
	}

	return errs.Err()
}

// NormalizeEmail returns email in the form it is stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
