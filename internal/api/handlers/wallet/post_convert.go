package wallet

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func PostAdaToLovelacesRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/convert/ada-to-lovelaces", postAdaToLovelacesHandler())
}

func PostLovelacesToAdaRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/convert/lovelaces-to-ada", postLovelacesToAdaHandler())
}

func postAdaToLovelacesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostAdaToLovelacesPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		ada := swag.Float64Value(body.Ada)

		lovelaces, err := wallet.AdaToLovelace(decimal.NewFromFloat(ada))
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostAdaToLovelacesResponse{
			Ada:       swag.Float64(ada),
			Lovelaces: swag.Int64(lovelaces),
		})
	}
}

func postLovelacesToAdaHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostLovelacesToAdaPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		lovelaces := swag.Int64Value(body.Lovelaces)

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostLovelacesToAdaResponse{
			Lovelaces: swag.Int64(lovelaces),
			Ada:       swag.Float64(wallet.AdaFloat(lovelaces)),
		})
	}
}
