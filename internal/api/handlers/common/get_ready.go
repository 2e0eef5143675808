package common

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
)

const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check. The endpoint is public, the body never carries probe details.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			log.Warn().Msg("Readiness probe failed, server is not fully initialized")
			return c.String(statusNotReady, "Not ready.")
		}

		if _, errs := ProbeReadiness(ctx, probeDB(s), s.Config.Management.ReadinessTimeout, s.Config.Management.ProbeWriteablePathsAbs); len(errs) > 0 {
			log.Warn().Errs("errs", errs).Msg("Readiness probe failed")
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
