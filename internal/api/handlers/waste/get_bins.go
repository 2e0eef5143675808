package waste

import (
	"net/http"
	"strings"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
)

func GetBinsRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/bins", getBinsHandler(s))
}

func getBinsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		list, err := s.Bins.ListActive(ctx, strings.TrimSpace(c.QueryParam("search")))
		if err != nil {
			return err
		}

		res := make(types.GetBinsResponse, 0, len(list))
		for _, b := range list {
			res = append(res, binItem(b))
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
