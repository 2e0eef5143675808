package waste

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetNearbyBinsRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/bins/nearby", getNearbyBinsHandler(s))
}

func getNearbyBinsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var params types.GetNearbyBinsParams
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		radius := bins.DefaultNearbyRadiusKm
		if params.Radius != nil {
			radius = *params.Radius
		}

		list, err := s.Bins.Nearby(ctx, swag.Float64Value(params.Lat), swag.Float64Value(params.Lng), radius)
		if err != nil {
			return err
		}

		res := make(types.GetBinsResponse, 0, len(list))
		for _, nb := range list {
			item := binItem(&nb.Bin)
			item.DistanceKm = swag.Float64(nb.DistanceKm)
			res = append(res, item)
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
