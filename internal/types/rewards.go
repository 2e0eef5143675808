package types

import (
	"github.com/go-openapi/strfmt"
)

// RewardHistoryItem reward history item
type RewardHistoryItem struct {
	// Required: true
	ID *strfmt.UUID `json:"id"`

	// Required: true
	Points *int64 `json:"points"`

	// Required: true
	AdaAmount *float64 `json:"ada_amount"`

	// Required: true
	// Enum: [earned redeemed]
	TransactionType *string `json:"transaction_type"`

	Description string `json:"description"`

	BlockchainHash *string `json:"blockchain_hash"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"created_at"`

	// Required: true
	// Enum: [confirmed pending]
	Status *string `json:"status"`

	WasteInfo *WasteInfo `json:"waste_info,omitempty"`
}

// WasteInfo origin of an earned transaction
type WasteInfo struct {
	WasteType string `json:"waste_type"`

	BinName string `json:"bin_name"`
}

// GetRewardHistoryResponse get reward history response
type GetRewardHistoryResponse []*RewardHistoryItem

func (m GetRewardHistoryResponse) Validate(formats strfmt.Registry) error {
	for _, item := range m {
		if err := requireAll(
			required("id", item.ID),
			required("points", item.Points),
			required("transaction_type", item.TransactionType),
			required("status", item.Status),
		); err != nil {
			return err
		}
	}

	return nil
}

// RewardTotals aggregate point figures
type RewardTotals struct {
	// Required: true
	PointsEarned *int64 `json:"points_earned"`

	// Required: true
	PointsRedeemed *int64 `json:"points_redeemed"`

	// Required: true
	PointsAvailable *int64 `json:"points_available"`

	// Required: true
	AdaEarned *float64 `json:"ada_earned"`

	// Required: true
	AdaAvailable *float64 `json:"ada_available"`

	// Required: true
	AdaRedeemed *float64 `json:"ada_redeemed"`
}

// RewardStatistics counters
type RewardStatistics struct {
	// Required: true
	TotalSubmissions *int64 `json:"total_submissions"`

	// Required: true
	TotalTransactions *int64 `json:"total_transactions"`

	FirstRewardDate *strfmt.DateTime `json:"first_reward_date"`

	LastRewardDate *strfmt.DateTime `json:"last_reward_date"`
}

// RewardBlockchain settlement progress
type RewardBlockchain struct {
	// Required: true
	ConfirmedTransactions *int64 `json:"confirmed_transactions"`

	// Required: true
	PendingConfirmation *int64 `json:"pending_confirmation"`

	// Required: true
	PendingAda *float64 `json:"pending_ada"`
}

// GetRewardTotalResponse get reward total response
type GetRewardTotalResponse struct {
	// Required: true
	WalletAddress *string `json:"wallet_address"`

	// Required: true
	Network *string `json:"network"`

	// Required: true
	Totals *RewardTotals `json:"totals"`

	// Required: true
	Statistics *RewardStatistics `json:"statistics"`

	// Required: true
	Blockchain *RewardBlockchain `json:"blockchain"`
}

func (m *GetRewardTotalResponse) Validate(formats strfmt.Registry) error {
	if err := requireAll(
		required("wallet_address", m.WalletAddress),
		required("network", m.Network),
		required("totals", m.Totals),
		required("statistics", m.Statistics),
		required("blockchain", m.Blockchain),
	); err != nil {
		return err
	}

	return requireAll(
		required("totals.points_earned", m.Totals.PointsEarned),
		required("totals.points_available", m.Totals.PointsAvailable),
		required("statistics.total_submissions", m.Statistics.TotalSubmissions),
	)
}
