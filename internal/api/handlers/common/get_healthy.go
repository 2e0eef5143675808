package common

import (
	"database/sql"
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness check. Unlike readiness this also writes to the probe paths.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		report, errs := ProbeLiveness(ctx, probeDB(s), s.Config.Management.LivenessTimeout, s.Config.Management.ProbeWriteablePathsAbs, s.Config.Management.ProbeWriteableTouchfile)
		if len(errs) > 0 {
			util.LogFromContext(ctx).Warn().Errs("errs", errs).Msg("Liveness probe failed")
			return c.String(http.StatusServiceUnavailable, report)
		}

		return c.String(http.StatusOK, report+"Healthy.")
	}
}

func probeDB(s *api.Server) *sql.DB {
	if !s.UsesDatabase() {
		return nil
	}

	return s.DB
}
