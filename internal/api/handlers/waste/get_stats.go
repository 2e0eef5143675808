package waste

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetStatsRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/stats", getStatsHandler(s), middleware.Auth(s.Auth))
}

func getStatsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)

		stats, err := s.Rewards.Stats(ctx, user.ID)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetWasteStatsResponse{
			TotalSubmissions: swag.Int64(stats.TotalSubmissions),
			TotalPoints:      swag.Int64(stats.TotalPoints),
			TotalAda:         swag.Float64(wallet.AdaFloat(stats.TotalPoints)),
		})
	}
}
