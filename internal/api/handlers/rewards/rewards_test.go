package rewards_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/test"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dropOff(t *testing.T, s *api.Server, token string, qr string, wasteType string) {
	t.Helper()

	res := test.PerformMultipartRequest(t, s, http.MethodPost, "/waste/submit", map[string]string{
		"qr_code":    qr,
		"waste_type": wasteType,
	}, nil, test.HeadersWithAuth(t, token))
	require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())
}

func getTotal(t *testing.T, s *api.Server, token string) *types.GetRewardTotalResponse {
	t.Helper()

	res := test.PerformRequest(t, s, http.MethodGet, "/rewards/total", nil, test.HeadersWithAuth(t, token))
	require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

	var body types.GetRewardTotalResponse
	test.ParseResponseAndValidate(t, res, &body)

	return &body
}

func getHistory(t *testing.T, s *api.Server, token string) types.GetRewardHistoryResponse {
	t.Helper()

	res := test.PerformRequest(t, s, http.MethodGet, "/rewards/history", nil, test.HeadersWithAuth(t, token))
	require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

	var body types.GetRewardHistoryResponse
	test.ParseResponseAndValidate(t, res, &body)

	return body
}

func TestGetTotalWithoutRewards(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		body := getTotal(t, s, account.Token)
		assert.Equal(t, account.Address, *body.WalletAddress)
		assert.Equal(t, "Preprod", *body.Network)
		assert.Equal(t, int64(0), *body.Totals.PointsEarned)
		assert.Equal(t, int64(0), *body.Totals.PointsAvailable)
		assert.Equal(t, int64(0), *body.Statistics.TotalSubmissions)
		assert.Nil(t, body.Statistics.FirstRewardDate)
		assert.Nil(t, body.Statistics.LastRewardDate)
		assert.Equal(t, int64(0), *body.Blockchain.PendingConfirmation)

		assert.Empty(t, getHistory(t, s, account.Token))
	})
}

func TestRewardsSettlementLifecycle(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		dropOff(t, s, account.Token, "QR_BIN001", "laptop")
		dropOff(t, s, account.Token, "QR_BIN002", "phone_charger")

		body := getTotal(t, s, account.Token)
		assert.Equal(t, int64(6_000_000), *body.Totals.PointsEarned)
		assert.Equal(t, int64(0), *body.Totals.PointsRedeemed)
		assert.Equal(t, int64(6_000_000), *body.Totals.PointsAvailable)
		assert.InDelta(t, 6.0, *body.Totals.AdaEarned, 1e-9)
		assert.InDelta(t, 6.0, *body.Totals.AdaAvailable, 1e-9)
		assert.Equal(t, int64(2), *body.Statistics.TotalSubmissions)
		assert.Equal(t, int64(2), *body.Statistics.TotalTransactions)
		assert.NotNil(t, body.Statistics.FirstRewardDate)
		assert.NotNil(t, body.Statistics.LastRewardDate)
		assert.Equal(t, int64(0), *body.Blockchain.ConfirmedTransactions)
		assert.Equal(t, int64(2), *body.Blockchain.PendingConfirmation)
		assert.InDelta(t, 6.0, *body.Blockchain.PendingAda, 1e-9)

		history := getHistory(t, s, account.Token)
		require.Len(t, history, 2)
		for _, item := range history {
			assert.Equal(t, "earned", *item.TransactionType)
			assert.Equal(t, "pending", *item.Status)
			assert.Nil(t, item.BlockchainHash)
			require.NotNil(t, item.WasteInfo)
			assert.True(t, strings.HasPrefix(item.Description, "Recycled "+item.WasteInfo.WasteType+" at "))
		}

		n, err := s.Settlement.RunOnce(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		body = getTotal(t, s, account.Token)
		assert.Equal(t, int64(2), *body.Blockchain.ConfirmedTransactions)
		assert.Equal(t, int64(0), *body.Blockchain.PendingConfirmation)
		assert.InDelta(t, 0, *body.Blockchain.PendingAda, 1e-9)
		assert.Equal(t, int64(6_000_000), *body.Totals.PointsEarned)

		history = getHistory(t, s, account.Token)
		require.Len(t, history, 2)
		for _, item := range history {
			assert.Equal(t, "confirmed", *item.Status)
			require.NotNil(t, item.BlockchainHash)
			assert.True(t, strings.HasPrefix(*item.BlockchainHash, "mock_tx_"))
		}

		res := test.PerformRequest(t, s, http.MethodGet, "/waste/submissions", nil, test.HeadersWithAuth(t, account.Token))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var subs types.GetSubmissionsResponse
		test.ParseResponseAndValidate(t, res, &subs)
		require.Len(t, subs, 2)
		for _, sub := range subs {
			assert.Equal(t, "confirmed", *sub.Status)
			require.NotNil(t, sub.BlockchainHash)
		}

		// a second run finds nothing left to settle
		n, err = s.Settlement.RunOnce(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestRewardsAreScopedToUser(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ada := test.Signup(t, s, "ada@example.com", "ada")
		bob := test.Signup(t, s, "bob@example.com", "bob")

		dropOff(t, s, ada.Token, "QR_BIN003", "smartphone")

		assert.Len(t, getHistory(t, s, ada.Token), 1)
		assert.Empty(t, getHistory(t, s, bob.Token))
		assert.Equal(t, int64(0), *getTotal(t, s, bob.Token).Totals.PointsEarned)
	})
}

func TestRewardsUnauthorized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		for _, path := range []string{"/rewards/history", "/rewards/total"} {
			res := test.PerformRequest(t, s, http.MethodGet, path, nil, nil)
			test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)

			res = test.PerformRequest(t, s, http.MethodGet, path, nil, test.HeadersWithAuth(t, "not-a-jwt"))
			test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)
		}
	})
}
