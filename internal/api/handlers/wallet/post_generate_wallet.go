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

// PostGenerateWalletRoute mints a wallet without persisting it. Test networks only.
func PostGenerateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/generate", postGenerateWalletHandler(s), middleware.NoCache())
}

func postGenerateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		provisioned, err := s.Wallet.Generate(ctx, s.Wallet.Network())
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to generate wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostGenerateWalletResponse{
			Address:           swag.String(provisioned.Address),
			RewardAddress:     swag.String(provisioned.RewardAddress),
			Mnemonic:          swag.String(provisioned.SeedPhrase),
			EncryptedMnemonic: swag.String(provisioned.EncryptedSeed),
			Network:           swag.String(provisioned.Network.String()),
		})
	}
}
