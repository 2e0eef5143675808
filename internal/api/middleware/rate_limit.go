package middleware

import (
	"time"

	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const visitorExpiry = 3 * time.Minute

// SignupRateLimit bounds signup attempts per client IP. Every signup mints a wallet,
// so this also bounds wallet generation. A non-positive limit disables it.
func SignupRateLimit(cfg config.Signup) echo.MiddlewareFunc {
	if cfg.RateLimitPerMinute <= 0 {
		return Noop()
	}

	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(cfg.RateLimitPerMinute)),
		Burst:     burst,
		ExpiresIn: visitorExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return httperrors.ErrTooManyRequests.Wrap(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			util.LogFromEchoContext(c).Warn().Str("remote_ip", identifier).Msg("Signup rate limit exceeded")
			return httperrors.ErrTooManyRequests
		},
	})
}
