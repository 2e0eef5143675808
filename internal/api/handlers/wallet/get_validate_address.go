package wallet

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetValidateAddressRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.GET("/validate/:address", getValidateAddressHandler(s))
}

func getValidateAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		addr := c.Param("address")

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetValidateAddressResponse{
			Address: swag.String(addr),
			IsValid: swag.Bool(s.Wallet.ValidateAddress(addr)),
		})
	}
}
