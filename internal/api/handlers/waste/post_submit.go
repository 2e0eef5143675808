package waste

import (
	"errors"
	"net/http"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/middleware"
	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

const photoField = "photo"

func PostSubmitRoute(s *api.Server) *echo.Route {
	return s.Router.Waste.POST("/submit", postSubmitHandler(s), middleware.Auth(s.Auth))
}

func postSubmitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user := auth.UserFromContext(ctx)
		log := util.LogFromContext(ctx)

		var body types.PostWasteSubmitPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		req := rewards.SubmissionRequest{
			UserID:    user.ID,
			QRCode:    swag.StringValue(body.QrCode),
			WasteType: swag.StringValue(body.WasteType),
			WeightKg:  body.WeightKg,
			Note:      body.Description,
		}

		// nothing is stored for a drop-off that would be rejected
		if err := s.Rewards.CheckSubmission(ctx, req); err != nil {
			log.Debug().Err(err).Msg("Rejecting submission")
			return err
		}

		// the photo is optional, a drop-off without one is still rewarded
		var photoRef string
		fh, err := c.FormFile(photoField)
		switch {
		case err == nil:
			file, err := fh.Open()
			if err != nil {
				return err
			}
			defer file.Close()

			photoRef, err = s.Photos.Save(ctx, user.ID, file)
			if err != nil {
				log.Debug().Err(err).Msg("Failed to store photo")
				return err
			}
		case errors.Is(err, http.ErrMissingFile):
		default:
			log.Debug().Err(err).Msg("Failed to read photo from form")
			return err
		}

		req.PhotoRef = photoRef

		result, err := s.Rewards.RecordSubmission(ctx, req)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to record submission")
			return err
		}

		s.Settlement.Notify()

		points := result.Submission.PointsEarned
		ada := wallet.AdaFloat(points)

		return util.ValidateAndReturn(c, http.StatusOK, &types.PostWasteSubmitResponse{
			Success: swag.Bool(true),
			Submission: &types.SubmissionSummary{
				ID:           uuidPtr(result.Submission.ID),
				WasteType:    swag.String(result.Submission.WasteType),
				PointsEarned: swag.Int64(points),
				AdaAmount:    swag.Float64(ada),
				PhotoURL:     nullStringPtr(result.Submission.PhotoRef),
			},
			Bin: &types.BinSummary{
				Name:    swag.String(result.Bin.Name),
				Address: swag.String(result.Bin.Address),
			},
			Reward: &types.RewardSummary{
				Points: swag.Int64(points),
				Ada:    swag.Float64(ada),
			},
		})
	}
}
