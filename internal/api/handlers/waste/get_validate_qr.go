package waste

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetValidateQRRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.GET("/validate-qr", getValidateQRHandler(s))
}

// Unknown or inactive codes are a valid answer, not an error.
func getValidateQRHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		qrCode := strings.TrimSpace(c.QueryParam("qr_code"))
		if len(qrCode) == 0 {
			return httperrors.ErrBadRequestInvalidQRCode
		}

		bin, err := s.Bins.FindActiveByQR(ctx, qrCode)
		if err != nil {
			if errors.Is(err, bins.ErrBinNotFound) {
				return util.ValidateAndReturn(c, http.StatusOK, &types.GetValidateQRResponse{
					Valid: swag.Bool(false),
					Error: "Invalid QR code",
				})
			}
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetValidateQRResponse{
			Valid: swag.Bool(true),
			Bin:   binSummary(bin),
		})
	}
}
