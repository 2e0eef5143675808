package waste

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetCategoriesRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/categories", getCategoriesHandler(s))
}

func getCategoriesHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries := s.Catalog.List()

		res := make(types.GetWasteCategoriesResponse, 0, len(entries))
		for _, e := range entries {
			res = append(res, &types.WasteCategory{
				WasteType: swag.String(e.WasteType),
				Points:    swag.Int64(e.Points),
				AdaAmount: swag.Float64(wallet.AdaFloat(e.Points)),
				Category:  swag.String(e.Category),
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
