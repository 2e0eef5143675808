package auth

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostResendOtpRoute(s *api.Server) *echo.Route {
	return s.Router.Auth.POST("/resend-otp", postResendOtpHandler(s), middleware.SignupRateLimit(s.Config.Signup))
}

func postResendOtpHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostResendOtpPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		expires, err := s.Signup.Resend(ctx, body.Email.String(), middleware.LanguageFromContext(ctx))
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to resend otp")
			return err
		}

		expiresAt := strfmt.DateTime(expires)

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostResendOtpResponse{
			Message:   swag.String("A new verification code was sent."),
			ExpiresAt: &expiresAt,
		})
	}
}
