package wallet

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.GET("/network", getNetworkHandler(s))
}

func getNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		network := s.Wallet.Network()

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetNetworkResponse{
			Network:   swag.String(network.String()),
			IsMainnet: swag.Bool(network.IsMainnet()),
		})
	}
}
