package auth

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostVerifyOtpRoute(s *api.Server) *echo.Route {
	return s.Router.Auth.POST("/verify-otp", postVerifyOtpHandler(s), middleware.NoCache())
}

// The seed phrase is part of this response only, it can not be requested again.
func postVerifyOtpHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostVerifyOtpPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Signup.Verify(ctx, body.Email.String(), swag.StringValue(body.Otp))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to verify otp")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostVerifyOtpResponse{
			PostLoginResponse: types.PostLoginResponse{
				Message: swag.String("Account verified. Store your seed phrase safely, it will not be shown again."),
				User:    userToTypes(result.Profile),
				Token:   swag.String(result.Token),
			},
			SeedPhrase: swag.String(result.SeedPhrase),
		})
	}
}
