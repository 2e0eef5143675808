package handlers

import (
	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/handlers/auth"
	"github.com/JojoFlex1/done/internal/api/handlers/common"
	"github.com/JojoFlex1/done/internal/api/handlers/rewards"
	"github.com/JojoFlex1/done/internal/api/handlers/wallet"
	"github.com/JojoFlex1/done/internal/api/handlers/waste"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		auth.GetProfileRoute(s),
		auth.PostLoginRoute(s),
		auth.PostResendOtpRoute(s),
		auth.PostSignupRoute(s),
		auth.PostVerifyOtpRoute(s),
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		rewards.GetHistoryRoute(s),
		rewards.GetTotalRoute(s),
		wallet.GetNetworkRoute(s),
		wallet.GetValidateAddressRoute(s),
		wallet.PostAdaToLovelacesRoute(s),
		wallet.PostLovelacesToAdaRoute(s),
		wallet.PostProvisionWalletRoute(s),
		waste.GetBinsRoute(s),
		waste.GetCategoriesRoute(s),
		waste.GetNearbyBinsRoute(s),
		waste.GetStatsRoute(s),
		waste.GetSubmissionsRoute(s),
		waste.GetValidateQRRoute(s),
		waste.PostSubmitRoute(s),
	}

	if s.Config.Wallet.EnableTestEndpoints {
		s.Router.Routes = append(s.Router.Routes,
			wallet.PostDecryptMnemonicRoute(s),
			wallet.PostGenerateWalletRoute(s),
		)
	} else {
		log.Info().Msg("Wallet test endpoints are disabled")
	}
}
