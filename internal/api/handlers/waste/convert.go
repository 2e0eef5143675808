package waste

import (
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/aarondl/null/v8"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

func uuidPtr(id string) *strfmt.UUID {
	u := strfmt.UUID(id)
	return &u
}

func nullStringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	return swag.String(s.String)
}

func binSummary(b *bins.Bin) *types.BinSummary {
	return &types.BinSummary{
		ID:      uuidPtr(b.ID),
		Name:    swag.String(b.Name),
		Address: swag.String(b.Address),
	}
}

func binItem(b *bins.Bin) *types.BinItem {
	item := &types.BinItem{
		ID:      uuidPtr(b.ID),
		Name:    swag.String(b.Name),
		QrCode:  swag.String(b.QRCode),
		Address: swag.String(b.Address),
	}
	if b.Latitude.Valid && b.Longitude.Valid {
		item.Latitude = swag.Float64(b.Latitude.Float64)
		item.Longitude = swag.Float64(b.Longitude.Float64)
	}

	return item
}

func submissionItem(sub *rewards.Submission) *types.SubmissionItem {
	createdAt := strfmt.DateTime(sub.CreatedAt)

	item := &types.SubmissionItem{
		ID:             uuidPtr(sub.ID),
		WasteType:      swag.String(sub.WasteType),
		PointsEarned:   swag.Int64(sub.PointsEarned),
		AdaAmount:      swag.Float64(wallet.AdaFloat(sub.PointsEarned)),
		PhotoURL:       nullStringPtr(sub.PhotoRef),
		BlockchainHash: nullStringPtr(sub.SettlementRef),
		Status:         swag.String(sub.Status()),
		CreatedAt:      &createdAt,
	}
	if sub.WeightKg.Valid {
		item.WeightKg = swag.Float64(sub.WeightKg.Float64)
	}

	return item
}
