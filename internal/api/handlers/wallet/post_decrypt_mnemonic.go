package wallet

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostDecryptMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/decrypt", postDecryptMnemonicHandler(s), middleware.NoCache())
}

func postDecryptMnemonicHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostDecryptMnemonicPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		mnemonic, err := s.Wallet.Decrypt(ctx, swag.StringValue(body.EncryptedData), swag.StringValue(body.Password))
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to decrypt mnemonic")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostDecryptMnemonicResponse{
			Mnemonic: swag.String(mnemonic),
		})
	}
}
