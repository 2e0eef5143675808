package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

const descriptionMaxLength = 500

// PostWasteSubmitPayload multipart form fields of a waste drop-off
type PostWasteSubmitPayload struct {
	// Required: true
	QrCode *string `json:"qr_code" form:"qr_code"`

	// Required: true
	WasteType *string `json:"waste_type" form:"waste_type"`

	// Minimum: 0
	WeightKg *float64 `json:"weight_kg,omitempty" form:"weight_kg"`

	// Max Length: 500
	Description string `json:"description,omitempty" form:"description"`
}

func (m *PostWasteSubmitPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("qr_code", "formData", m.QrCode); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("qr_code", "formData", *m.QrCode, 1); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("waste_type", "formData", m.WasteType); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("waste_type", "formData", *m.WasteType, 1); err != nil {
		res = append(res, err)
	}

	if m.WeightKg != nil {
		if err := validate.Minimum("weight_kg", "formData", *m.WeightKg, 0, true); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.MaxLength("description", "formData", m.Description, descriptionMaxLength); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// SubmissionSummary submission block of a submit response
type SubmissionSummary struct {
	// Required: true
	ID *strfmt.UUID `json:"id"`

	// Required: true
	WasteType *string `json:"waste_type"`

	// Required: true
	PointsEarned *int64 `json:"points_earned"`

	// Required: true
	AdaAmount *float64 `json:"ada_amount"`

	PhotoURL *string `json:"photo_url"`
}

// BinSummary public bin fields
type BinSummary struct {
	ID *strfmt.UUID `json:"id,omitempty"`

	// Required: true
	Name *string `json:"name"`

	// Required: true
	Address *string `json:"address"`
}

// RewardSummary reward block of a submit response
type RewardSummary struct {
	// Required: true
	Points *int64 `json:"points"`

	// Required: true
	Ada *float64 `json:"ada"`
}

// PostWasteSubmitResponse post waste submit response
type PostWasteSubmitResponse struct {
	// Required: true
	Success *bool `json:"success"`

	// Required: true
	Submission *SubmissionSummary `json:"submission"`

	// Required: true
	Bin *BinSummary `json:"bin"`

	// Required: true
	Reward *RewardSummary `json:"reward"`
}

func (m *PostWasteSubmitResponse) Validate(formats strfmt.Registry) error {
	if err := requireAll(
		required("success", m.Success),
		required("submission", m.Submission),
		required("bin", m.Bin),
		required("reward", m.Reward),
	); err != nil {
		return err
	}

	return requireAll(
		required("submission.id", m.Submission.ID),
		required("submission.points_earned", m.Submission.PointsEarned),
		required("bin.name", m.Bin.Name),
		required("reward.points", m.Reward.Points),
	)
}

// GetValidateQRResponse get validate qr response
type GetValidateQRResponse struct {
	// Required: true
	Valid *bool `json:"valid"`

	Bin *BinSummary `json:"bin,omitempty"`

	Error string `json:"error,omitempty"`
}

func (m *GetValidateQRResponse) Validate(formats strfmt.Registry) error {
	return requireAll(required("valid", m.Valid))
}

// WasteCategory waste category
type WasteCategory struct {
	// Required: true
	WasteType *string `json:"waste_type"`

	// Required: true
	Points *int64 `json:"points"`

	// Required: true
	AdaAmount *float64 `json:"ada_amount"`

	// Required: true
	Category *string `json:"category"`
}

// GetWasteCategoriesResponse get waste categories response
type GetWasteCategoriesResponse []*WasteCategory

func (m GetWasteCategoriesResponse) Validate(formats strfmt.Registry) error {
	for _, c := range m {
		if err := requireAll(
			required("waste_type", c.WasteType),
			required("points", c.Points),
			required("category", c.Category),
		); err != nil {
			return err
		}
	}

	return nil
}

// SubmissionItem submission list item
type SubmissionItem struct {
	// Required: true
	ID *strfmt.UUID `json:"id"`

	// Required: true
	WasteType *string `json:"waste_type"`

	// Required: true
	PointsEarned *int64 `json:"points_earned"`

	// Required: true
	AdaAmount *float64 `json:"ada_amount"`

	PhotoURL *string `json:"photo_url"`

	WeightKg *float64 `json:"weight_kg,omitempty"`

	BlockchainHash *string `json:"blockchain_hash"`

	// Required: true
	Status *string `json:"status"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"created_at"`
}

// GetSubmissionsResponse get submissions response
type GetSubmissionsResponse []*SubmissionItem

func (m GetSubmissionsResponse) Validate(formats strfmt.Registry) error {
	for _, s := range m {
		if err := requireAll(
			required("id", s.ID),
			required("status", s.Status),
			required("created_at", s.CreatedAt),
		); err != nil {
			return err
		}
	}

	return nil
}

// BinItem bin list item
type BinItem struct {
	// Required: true
	ID *strfmt.UUID `json:"id"`

	// Required: true
	Name *string `json:"name"`

	// Required: true
	QrCode *string `json:"qr_code"`

	// Required: true
	Address *string `json:"address"`

	Latitude *float64 `json:"latitude,omitempty"`

	Longitude *float64 `json:"longitude,omitempty"`

	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// GetBinsResponse get bins response
type GetBinsResponse []*BinItem

func (m GetBinsResponse) Validate(formats strfmt.Registry) error {
	for _, b := range m {
		if err := requireAll(
			required("id", b.ID),
			required("name", b.Name),
			required("qr_code", b.QrCode),
		); err != nil {
			return err
		}
	}

	return nil
}

// GetNearbyBinsParams query params of the nearby bins lookup
type GetNearbyBinsParams struct {
	// Required: true
	// Minimum: -90
	// Maximum: 90
	Lat *float64 `query:"lat"`

	// Required: true
	// Minimum: -180
	// Maximum: 180
	Lng *float64 `query:"lng"`

	// Minimum: 0
	Radius *float64 `query:"radius"`
}

func (m *GetNearbyBinsParams) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("lat", "query", m.Lat); err != nil {
		res = append(res, err)
	} else {
		if err := validate.Minimum("lat", "query", *m.Lat, -90, false); err != nil {
			res = append(res, err)
		}
		if err := validate.Maximum("lat", "query", *m.Lat, 90, false); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.Required("lng", "query", m.Lng); err != nil {
		res = append(res, err)
	} else {
		if err := validate.Minimum("lng", "query", *m.Lng, -180, false); err != nil {
			res = append(res, err)
		}
		if err := validate.Maximum("lng", "query", *m.Lng, 180, false); err != nil {
			res = append(res, err)
		}
	}

	if m.Radius != nil {
		if err := validate.Minimum("radius", "query", *m.Radius, 0, true); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// GetWasteStatsResponse get waste stats response
type GetWasteStatsResponse struct {
	// Required: true
	TotalSubmissions *int64 `json:"total_submissions"`

	// Required: true
	TotalPoints *int64 `json:"total_points"`

	// Required: true
	TotalAda *float64 `json:"total_ada"`
}

func (m *GetWasteStatsResponse) Validate(formats strfmt.Registry) error {
	return requireAll(
		required("total_submissions", m.TotalSubmissions),
		required("total_points", m.TotalPoints),
		required("total_ada", m.TotalAda),
	)
}
