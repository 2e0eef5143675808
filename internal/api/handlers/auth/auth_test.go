package auth_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/httperrors"
	"github.com/JojoFlex1/done/internal/test"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupPayload(email string, username string) test.GenericPayload {
	return test.GenericPayload{
		"email":     email,
		"username":  username,
		"firstName": "Grace",
		"lastName":  "Hopper",
		"password":  "a strong password",
	}
}

func TestPostSignupSuccess(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("grace@example.com", "grace"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.PostSignupResponse
		test.ParseResponseAndValidate(t, res, &body)

		assert.True(t, strings.HasPrefix(*body.WalletAddress, "addr_test1"))
		assert.Equal(t, s.Clock.Now().Add(s.Config.Signup.OTPTTL).UTC(), time.Time(*body.ExpiresAt).UTC())

		otp := test.LastOTP(t, s, "grace@example.com")
		assert.Len(t, otp, 6)
		assert.NotContains(t, res.Body.String(), otp)
	})
}

func TestPostSignupInvalidPayload(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", test.GenericPayload{
			"email":    "not-an-email",
			"username": "grace",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDREQUESTBODY, *body.Type)
		assert.NotEmpty(t, body.ValidationErrors)
	})
}

func TestPostSignupDuplicateIdentity(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Signup(t, s, "grace@example.com", "grace")

		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("Grace@Example.com", "grace2"), nil)
		test.RequireHTTPError(t, res, httperrors.ErrConflictDuplicateIdentity)
	})
}

func TestPostSignupRateLimited(t *testing.T) {
	cfg := test.DefaultTestConfig(t)
	cfg.Signup.RateLimitPerMinute = 1
	cfg.Signup.RateLimitBurst = 1

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("one@example.com", "one"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("two@example.com", "two"), nil)
		test.RequireHTTPError(t, res, httperrors.ErrTooManyRequests)
	})
}

func TestPostVerifyOtpSuccess(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("grace@example.com", "grace"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var signup types.PostSignupResponse
		test.ParseResponseAndValidate(t, res, &signup)

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   test.LastOTP(t, s, "grace@example.com"),
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())
		assert.Contains(t, res.Header().Get("Cache-Control"), "no-store")

		var body types.PostVerifyOtpResponse
		test.ParseResponseAndValidate(t, res, &body)

		assert.Equal(t, *signup.WalletAddress, *body.User.WalletAddress)
		assert.Len(t, strings.Fields(*body.SeedPhrase), 24)
		assert.NotEmpty(t, *body.Token)

		// the pending signup is consumed
		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   "123456",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestNoPendingSignup)
	})
}

func TestPostVerifyOtpInvalidCode(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("grace@example.com", "grace"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		otp := test.LastOTP(t, s, "grace@example.com")
		wrong := "000000"
		if otp == wrong {
			wrong = "111111"
		}

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   wrong,
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorizedInvalidOTP)

		// a failed attempt keeps the pending signup
		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   otp,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())
	})
}

func TestPostVerifyOtpExpired(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("grace@example.com", "grace"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		otp := test.LastOTP(t, s, "grace@example.com")
		test.MockClock(t, s).Advance(s.Config.Signup.OTPTTL + time.Second)

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   otp,
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestOTPExpired)
	})
}

func TestPostVerifyOtpNoPendingSignup(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "nobody@example.com",
			"otp":   "123456",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestNoPendingSignup)
	})
}

func TestPostResendOtp(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/signup", signupPayload("grace@example.com", "grace"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var signup types.PostSignupResponse
		test.ParseResponseAndValidate(t, res, &signup)

		test.MockClock(t, s).Advance(time.Minute)

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/resend-otp", test.GenericPayload{
			"email": "grace@example.com",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.PostResendOtpResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.True(t, time.Time(*body.ExpiresAt).After(time.Time(*signup.ExpiresAt)))
		assert.Len(t, test.MailTransport(t, s).GetSentMails(), 2)

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", test.GenericPayload{
			"email": "grace@example.com",
			"otp":   test.LastOTP(t, s, "grace@example.com"),
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var verified types.PostVerifyOtpResponse
		test.ParseResponseAndValidate(t, res, &verified)
		assert.Equal(t, *signup.WalletAddress, *verified.User.WalletAddress)
	})
}

func TestPostResendOtpNoPendingSignup(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodPost, "/auth/resend-otp", test.GenericPayload{
			"email": "nobody@example.com",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestNoPendingSignup)
	})
}

func TestPostLogin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformRequest(t, s, http.MethodPost, "/auth/login", test.GenericPayload{
			"email":    "ADA@example.com",
			"password": "correct horse battery",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.PostLoginResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, account.UserID, body.User.ID.String())
		assert.Equal(t, account.Address, *body.User.WalletAddress)
		assert.NotContains(t, res.Body.String(), account.SeedPhrase)
	})
}

func TestPostLoginInvalidCredentials(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformRequest(t, s, http.MethodPost, "/auth/login", test.GenericPayload{
			"email":    "ada@example.com",
			"password": "wrong password",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorizedInvalidCredentials)

		res = test.PerformRequest(t, s, http.MethodPost, "/auth/login", test.GenericPayload{
			"email":    "unknown@example.com",
			"password": "correct horse battery",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorizedInvalidCredentials)
	})
}

func TestGetProfile(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		account := test.Signup(t, s, "ada@example.com", "ada")

		res := test.PerformRequest(t, s, http.MethodGet, "/auth/profile", nil, test.HeadersWithAuth(t, account.Token))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body types.GetProfileResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "ada@example.com", *body.Email)
		assert.Equal(t, "Preprod", *body.Network)
		assert.Equal(t, int64(0), *body.TotalPoints)
		assert.NotContains(t, res.Body.String(), account.SeedPhrase)
		assert.NotContains(t, res.Body.String(), "encrypted")
	})
}

func TestGetProfileUnauthorized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, http.MethodGet, "/auth/profile", nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)

		res = test.PerformRequest(t, s, http.MethodGet, "/auth/profile", nil, test.HeadersWithAuth(t, "not-a-token"))
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)

		res = test.PerformRequest(t, s, http.MethodGet, "/auth/profile", nil, test.HeadersWithConfigurableAuth(t, "Basic", "Zm9vOmJhcg=="))
		test.RequireHTTPError(t, res, httperrors.ErrUnauthorized)
	})
}
