package waste

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
)

func GetSubmissionsRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/submissions", getSubmissionsHandler(s), middleware.Auth(s.Auth))
}

func getSubmissionsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)

		subs, err := s.Rewards.ListSubmissions(ctx, user.ID)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to list submissions")
			return err
		}

		res := make(types.GetSubmissionsResponse, 0, len(subs))
		for _, sub := range subs {
			res = append(res, submissionItem(sub))
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
