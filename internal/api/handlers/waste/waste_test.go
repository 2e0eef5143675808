package waste_test

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/test"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngPhoto = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func submit(t *testing.T, s *api.Server, token string, fields map[string]string, files ...test.MultipartFile) *types.PostWasteSubmitResponse {
	t.Helper()

	res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", fields, files, test.HeadersWithAuth(t, token))
	require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

	var body types.PostWasteSubmitResponse
	test.ParseResponseAndValidate(t, res, &body)

	return &body
}

func TestPostSubmitWithPhoto(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		body := submit(t, s, account.Token, map[string]string{
			"qr_code":     "QR_BIN001",
			"waste_type":  "smartphone",
			"weight_kg":   "0.2",
			"description": "old phone",
		}, test.MultipartFile{Field: "photo", Filename: "phone.png", Content: pngPhoto})

		assert.True(t, *body.Success)
		assert.Equal(t, "smartphone", *body.Submission.WasteType)
		assert.Equal(t, int64(3_000_000), *body.Submission.PointsEarned)
		assert.InDelta(t, 3.0, *body.Submission.AdaAmount, 1e-9)
		assert.Equal(t, "Lagos Mall Drop-off", *body.Bin.Name)
		assert.Equal(t, int64(3_000_000), *body.Reward.Points)

		require.NotNil(t, body.Submission.PhotoURL)
		assert.True(t, strings.HasPrefix(*body.Submission.PhotoURL, "/uploads/"))
		_, err := os.Stat(filepath.Join(s.Config.Storage.UploadPath, strings.TrimPrefix(*body.Submission.PhotoURL, "/uploads/")))
		require.NoError(t, err)

		res := test.PerformRequest(t, s, http.MethodGet, *body.Submission.PhotoURL, nil, nil)
		assert.Equal(t, http.StatusOK, res.Result().StatusCode)

		profile, err := s.Profiles.GetByID(t.Context(), account.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(3_000_000), profile.TotalPoints)
	})
}

func TestPostSubmitWithoutPhoto(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		body := submit(t, s, account.Token, map[string]string{
			"qr_code":    "QR_BIN002",
			"waste_type": "usb_cable",
		})

		assert.Equal(t, int64(1_000_000), *body.Reward.Points)
		assert.Nil(t, body.Submission.PhotoURL)
	})
}

func TestPostSubmitRejectsNonImage(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"qr_code":    "QR_BIN001",
			"waste_type": "smartphone",
		}, []test.MultipartFile{{Field: "photo", Filename: "notes.txt", Content: []byte("just some text")}}, test.HeadersWithAuth(t, account.Token))
		test.RequireHTTPError(t, res, httperrors.ErrUnsupportedMediaTypePhoto)

		res = test.PerformRequest(t, s, http.MethodGet, "/waste/submissions", nil, test.HeadersWithAuth(t, account.Token))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var subs types.GetSubmissionsResponse
		test.ParseResponseAndValidate(t, res, &subs)
		assert.Empty(t, subs)
	})
}

func TestPostSubmitUnknownWasteType(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"qr_code":    "QR_BIN001",
			"waste_type": "toaster",
		}, nil, test.HeadersWithAuth(t, account.Token))
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestUnknownWasteType)
	})
}

func TestPostSubmitUnknownBin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		for _, qr := range []string{"QR_NOPE", "QR_BIN900"} {
			res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
				"qr_code":    qr,
				"waste_type": "laptop",
			}, nil, test.HeadersWithAuth(t, account.Token))
			test.RequireHTTPError(t, res, httperrors.ErrNotFoundBin)
		}
	})
}

func countUploads(t *testing.T, dir string) int {
	t.Helper()

	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)

	return n
}

func TestPostSubmitRejectedKeepsNoPhoto(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")
		photo := test.MultipartFile{Field: "photo", Filename: "phone.png", Content: pngPhoto}

		res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"qr_code":    "QR_BIN001",
			"waste_type": "toaster",
		}, []test.MultipartFile{photo}, test.HeadersWithAuth(t, account.Token))
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestUnknownWasteType)

		res = test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"qr_code":    "QR_NOPE",
			"waste_type": "laptop",
		}, []test.MultipartFile{photo}, test.HeadersWithAuth(t, account.Token))
		test.RequireHTTPError(t, res, httperrors.ErrNotFoundBin)

		assert.Zero(t, countUploads(t, s.Config.Storage.UploadPath))

		submit(t, s, account.Token, map[string]string{
			"qr_code":    "QR_BIN001",
			"waste_type": "laptop",
		}, photo)
		assert.Equal(t, 1, countUploads(t, s.Config.Storage.UploadPath))
	})
}

func TestPostSubmitMissingFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"waste_type": "laptop",
		}, nil, test.HeadersWithAuth(t, account.Token))
		assert.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostSubmitUnauthorized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
			"qr_code":    "QR_BIN001",
			"waste_type": "laptop",
		}, nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)
	})
}

func TestGetValidateQR(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/validate-qr", nil, nil, map[string]string{"qr_code": "QR_BIN003"})
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.GetValidateQRResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.True(t, *body.Valid)
		require.NotNil(t, body.Bin)
		assert.Equal(t, "Ikeja Computer Village", *body.Bin.Name)

		res = test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/validate-qr", nil, nil, map[string]string{"qr_code": "QR_BIN900"})
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		body = types.GetValidateQRResponse{}
		test.ParseResponseAndValidate(t, res, &body)
		assert.False(t, *body.Valid)
		assert.Equal(t, "Invalid QR code", body.Error)

		res = test.PerformRequest(t, s, http.MethodGet, "/waste/validate-qr", nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestInvalidQRCode)
	})
}

func TestGetCategories(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodGet, "/waste/categories", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.GetWasteCategoriesResponse
		test.ParseResponseAndValidate(t, res, &body)
		require.Len(t, body, len(s.Catalog.List()))

		found := false
		for _, c := range body {
			if *c.WasteType == "laptop" {
				found = true
				assert.Equal(t, int64(5_000_000), *c.Points)
				assert.InDelta(t, 5.0, *c.AdaAmount, 1e-9)
				assert.Equal(t, "large_electronics", *c.Category)
			}
		}
		assert.True(t, found)
	})
}

func TestGetBins(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodGet, "/waste/bins", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.GetBinsResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Len(t, body, 4)
		for _, b := range body {
			assert.NotEqual(t, "QR_BIN900", *b.QrCode)
		}

		res = test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/bins", nil, nil, map[string]string{"search": "unilag"})
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		body = nil
		test.ParseResponseAndValidate(t, res, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "QR_BIN002", *body[0].QrCode)
	})
}

func TestGetNearbyBins(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/bins/nearby", nil, nil, map[string]string{
			"lat": "6.4474",
			"lng": "3.4700",
		})
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.GetBinsResponse
		test.ParseResponseAndValidate(t, res, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "QR_BIN001", *body[0].QrCode)
		assert.InDelta(t, 0, *body[0].DistanceKm, 0.01)

		res = test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/bins/nearby", nil, nil, map[string]string{
			"lat":    "6.4474",
			"lng":    "3.4700",
			"radius": "30",
		})
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		body = nil
		test.ParseResponseAndValidate(t, res, &body)
		require.Len(t, body, 3)
		assert.Equal(t, "QR_BIN001", *body[0].QrCode)
	})
}

func TestGetNearbyBinsInvalidParams(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithParams(t, s, http.MethodGet, "/waste/bins/nearby", nil, nil, map[string]string{
			"lat": "95",
			"lng": "3.47",
		})
		assert.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, http.MethodGet, "/waste/bins/nearby", nil, nil)
		assert.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestGetSubmissionsAndStats(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")
		other := test.Signup(t, s, "bob@example.com", "bob")

		submit(t, s, account.Token, map[string]string{"qr_code": "QR_BIN001", "waste_type": "laptop"})
		submit(t, s, account.Token, map[string]string{"qr_code": "QR_BIN002", "waste_type": "usb_cable"})
		submit(t, s, other.Token, map[string]string{"qr_code": "QR_BIN002", "waste_type": "smartphone"})

		res := test.PerformRequest(t, s, http.MethodGet, "/waste/submissions", nil, test.HeadersWithAuth(t, account.Token))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var subs types.GetSubmissionsResponse
		test.ParseResponseAndValidate(t, res, &subs)
		require.Len(t, subs, 2)
		for _, sub := range subs {
			assert.Equal(t, "pending", *sub.Status)
			assert.Nil(t, sub.BlockchainHash)
		}

		res = test.PerformRequest(t, s, http.MethodGet, "/waste/stats", nil, test.HeadersWithAuth(t, account.Token))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var stats types.GetWasteStatsResponse
		test.ParseResponseAndValidate(t, res, &stats)
		assert.Equal(t, int64(2), *stats.TotalSubmissions)
		assert.Equal(t, int64(6_000_000), *stats.TotalPoints)
		assert.InDelta(t, 6.0, *stats.TotalAda, 1e-9)
	})
}
