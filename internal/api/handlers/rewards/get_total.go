package rewards

import (
	"net/http"
	"time"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetTotalRoute(s *api.Server) *echo.Route {
	return s.Router.Rewards.GET("/total", getTotalHandler(s), middleware.Auth(s.Auth))
}

func getTotalHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)
		log := util.LogFromContext(ctx)

		profile, err := s.Profiles.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}

		totals, err := s.Rewards.GetTotals(ctx, user.ID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to compute reward totals")
			return err
		}

		pending := totals.TotalTransactions - totals.ConfirmedTransactions

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetRewardTotalResponse{
			WalletAddress: swag.String(profile.WalletAddress),
			Network:       swag.String(profile.Network),
			Totals: &types.RewardTotals{
				PointsEarned:    swag.Int64(totals.PointsEarned),
				PointsRedeemed:  swag.Int64(totals.PointsRedeemed),
				PointsAvailable: swag.Int64(totals.PointsAvailable),
				AdaEarned:       swag.Float64(wallet.AdaFloat(totals.PointsEarned)),
				AdaAvailable:    swag.Float64(wallet.AdaFloat(totals.PointsAvailable)),
				AdaRedeemed:     swag.Float64(wallet.AdaFloat(totals.PointsRedeemed)),
			},
			Statistics: &types.RewardStatistics{
				TotalSubmissions:  swag.Int64(totals.TotalSubmissions),
				TotalTransactions: swag.Int64(totals.TotalTransactions),
				FirstRewardDate:   dateTime(totals.FirstRewardAt),
				LastRewardDate:    dateTime(totals.LastRewardAt),
			},
			Blockchain: &types.RewardBlockchain{
				ConfirmedTransactions: swag.Int64(totals.ConfirmedTransactions),
				PendingConfirmation:   swag.Int64(pending),
				PendingAda:            swag.Float64(wallet.AdaFloat(totals.PendingConfirmation)),
			},
		})
	}
}

func dateTime(t *time.Time) *strfmt.DateTime {
	if t == nil {
		return nil
	}

	dt := strfmt.DateTime(*t)
	return &dt
}
