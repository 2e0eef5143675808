package wallet

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostProvisionWalletRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/provision", postProvisionWalletHandler(s), middleware.Auth(s.Auth), middleware.NoCache())
}

// postProvisionWalletHandler attaches a wallet to an account that has none yet.
// The seed phrase is returned once.
func postProvisionWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)
		log := util.LogFromContext(ctx)

		profile, err := s.Profiles.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}
		if profile.HasWallet() {
			return identity.ErrWalletAlreadyProvisioned
		}

		provisioned, err := s.Wallet.Generate(ctx, s.Wallet.Network())
		if err != nil {
			log.Error().Err(err).Msg("Failed to generate wallet")
			return err
		}

		if err := s.Profiles.ProvisionWallet(ctx, user.ID, identity.Wallet{
			Address:       provisioned.Address,
			RewardAddress: provisioned.RewardAddress,
			EncryptedSeed: provisioned.EncryptedSeed,
			Network:       provisioned.Network.String(),
		}); err != nil {
			log.Debug().Err(err).Msg("Failed to provision wallet")
			return err
		}

		log.Info().Str("address", util.TruncateAddress(provisioned.Address)).Msg("Wallet provisioned")

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostGenerateWalletResponse{
			Address:           swag.String(provisioned.Address),
			RewardAddress:     swag.String(provisioned.RewardAddress),
			Mnemonic:          swag.String(provisioned.SeedPhrase),
			EncryptedMnemonic: swag.String(provisioned.EncryptedSeed),
			Network:           swag.String(provisioned.Network.String()),
		})
	}
}
