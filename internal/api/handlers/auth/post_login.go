package auth

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostLoginRoute(s *api.Server) *echo.Route {
	return s.Router.Auth.POST("/login", postLoginHandler(s))
}

func postLoginHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostLoginPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Auth.Login(ctx, body.Email.String(), swag.StringValue(body.Password))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to authenticate user")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostLoginResponse{
			Message: swag.String("Login successful"),
			User:    userToTypes(result.Profile),
			Token:   swag.String(result.Token),
		})
	}
}
