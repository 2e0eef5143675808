package auth

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	authn "github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetProfileRoute(s *api.Server) *echo.Route {
	return s.Router.Auth.GET("/profile", getProfileHandler(s), middleware.Auth(s.Auth))
}

func getProfileHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := authn.UserFromContext(ctx)

		profile, err := s.Auth.Profile(ctx, user.ID)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to load profile")
			return err
		}

		createdAt := strfmt.DateTime(profile.CreatedAt)

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetProfileResponse{
			User:      *userToTypes(profile),
			Network:   swag.String(profile.Network),
			CreatedAt: &createdAt,
		})
	}
}
