package rewards

import (
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetHistoryRoute(s *api.Server) *echo.Route {
	return s.Router.Rewards.GET("/history", getHistoryHandler(s), middleware.Auth(s.Auth))
}

func getHistoryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)

		txs, err := s.Rewards.GetHistory(ctx, user.ID)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to load reward history")
			return err
		}

		res := make(types.GetRewardHistoryResponse, 0, len(txs))
		for _, tx := range txs {
			res = append(res, historyItem(tx))
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func historyItem(tx *rewards.Transaction) *types.RewardHistoryItem {
	id := strfmt.UUID(tx.ID)
	createdAt := strfmt.DateTime(tx.CreatedAt)

	item := &types.RewardHistoryItem{
		ID:              &id,
		Points:          swag.Int64(tx.Points),
		AdaAmount:       swag.Float64(wallet.AdaFloat(tx.Points)),
		TransactionType: swag.String(string(tx.Kind)),
		Description:     tx.Description,
		CreatedAt:       &createdAt,
		Status:          swag.String(tx.Status()),
	}
	if tx.SettlementRef.Valid {
		item.BlockchainHash = swag.String(tx.SettlementRef.String)
	}
	if tx.WasteType.Valid {
		item.WasteInfo = &types.WasteInfo{
			WasteType: tx.WasteType.String,
			BinName:   tx.BinName.String,
		}
	}

	return item
}
