package auth

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostSignupRoute(s *api.Server) *echo.Route {
	return s.Router.Auth.POST("/signup", postSignupHandler(s), middleware.SignupRateLimit(s.Config.Signup))
}

func postSignupHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignupPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Signup.BeginSignup(ctx, signup.BeginRequest{
			Email:     body.Email.String(),
			Username:  swag.StringValue(body.Username),
			FirstName: swag.StringValue(body.FirstName),
			LastName:  swag.StringValue(body.LastName),
			Password:  body.Password,
			Language:  middleware.LanguageFromContext(ctx),
		})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to begin signup")
			return err
		}

		expiresAt := strfmt.DateTime(result.ExpiresAt)

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostSignupResponse{
			Message:       swag.String("Verification code sent. Check your email to complete the signup."),
			WalletAddress: swag.String(result.WalletAddress),
			ExpiresAt:     &expiresAt,
		})
	}
}
