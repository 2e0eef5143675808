package auth

import (
	"context"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/pkg/errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Result is returned after a successful login.
type Result struct {
	Profile *identity.Profile
	Token   string
}

// Service authenticates users and issues bearer tokens
type Service interface {
	// Login checks email and password and issues a token.
	Login(ctx context.Context, email string, password string) (*Result, error)

	// Profile loads the profile of an authenticated user.
	Profile(ctx context.Context, userID string) (*identity.Profile, error)

	// IssueToken issues a bearer token for the profile.
	IssueToken(p *identity.Profile) (string, error)

	// Authenticate validates a bearer token and returns its user.
	Authenticate(ctx context.Context, token string) (*User, error)
}
