package auth

import (
	"context"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type service struct {
	profiles identity.Repository
	tokens   *tokens
}

// NewService creates a new auth Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cfg config.AuthServer, profiles identity.Repository, clock time2.Clock) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(cfg.JWTSecret, "JWT_SECRET"),
		vala.GreaterThan(int(cfg.TokenTTL), 0, "JWT_EXPIRE"),
		vala.IsNotNil(profiles, "profiles"),
		vala.IsNotNil(clock, "clock"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid auth service configuration")
	}

	return &service{
		profiles: profiles,
		tokens: &tokens{
			secret: []byte(cfg.JWTSecret),
			ttl:    cfg.TokenTTL,
			clock:  clock,
		},
	}, nil
}

func (s *service) Login(ctx context.Context, email string, password string) (*Result, error) {
	log := util.LogFromContext(ctx)

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, identity.ErrNotFound) {
			return nil, err
		}

		ComparePassword("", password)
		log.Debug().Msg("Login for unknown email")
		return nil, ErrInvalidCredentials
	}

	if !ComparePassword(p.PasswordHash, password) {
		log.Debug().Str("user_id", p.ID).Msg("Login with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(p)
	if err != nil {
		return nil, err
	}

	return &Result{Profile: p, Token: token}, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*identity.Profile, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return p, nil
}

func (s *service) IssueToken(p *identity.Profile) (string, error) {
	return s.tokens.issue(p.ID, p.Email)
}

func (s *service) Authenticate(_ context.Context, token string) (*User, error) {
	claims, err := s.tokens.parse(token)
	if err != nil {
		return nil, err
	}

	return &User{ID: claims.Subject, Email: claims.Email}, nil
}
