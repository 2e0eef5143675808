package middleware

import (
	"context"
	"strings"

	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const bearerScheme = "Bearer"

// Authenticator validates bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.User, error)
}

type AuthConfig struct {
	Authenticator Authenticator
	Skipper       middleware.Skipper
}

// Auth requires a valid bearer token and puts its user into the request context.
func Auth(a Authenticator) echo.MiddlewareFunc {
	return AuthWithConfig(AuthConfig{Authenticator: a})
}

func AuthWithConfig(config AuthConfig) echo.MiddlewareFunc {
	if config.Authenticator == nil {
		panic("auth middleware: authenticator is required")
	}
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			log := util.LogFromContext(ctx)

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				log.Trace().Msg("Request without bearer token")
				return httperrors.ErrUnauthorized
			}

			user, err := config.Authenticator.Authenticate(ctx, token)
			if err != nil {
				log.Debug().Err(err).Msg("Rejected bearer token")
				return httperrors.ErrUnauthorized.Wrap(err)
			}

			l := log.With().Str("user_id", user.ID).Logger()
			ctx = l.WithContext(auth.WithUser(ctx, user))
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(string(util.CTXKeyUser), user)

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return "", false
	}

	return token, true
}
