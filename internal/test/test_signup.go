package test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/mailer/transport"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/stretchr/testify/require"
)

var otpPattern = regexp.MustCompile(`(?m)^\s*(\d{6})\s*$`)

// MailTransport returns the mock mail transport of a test server.
func MailTransport(t *testing.T, s *api.Server) *transport.MockMailTransport {
	t.Helper()

	mt, ok := s.Mailer.Transport.(*transport.MockMailTransport)
	require.Truef(t, ok, "mail transport is %T, not the mock transport", s.Mailer.Transport)

	return mt
}

// LastOTP extracts the one-time code of the last mail sent to to.
func LastOTP(t *testing.T, s *api.Server, to string) string {
	t.Helper()

	mail := MailTransport(t, s).GetLastSentMail()
	require.NotNil(t, mail, "no mail was sent")
	require.Contains(t, mail.To, to)

	m := otpPattern.FindSubmatch(mail.Text)
	require.NotNil(t, m, "mail does not contain an otp: %s", mail.Text)

	return string(m[1])
}

// SignupResult is a verified test account.
type SignupResult struct {
	Email      string
	Token      string
	UserID     string
	Address    string
	SeedPhrase string
}

// Signup runs the complete signup of a new account and returns its credentials.
func Signup(t *testing.T, s *api.Server, email string, username string) *SignupResult {
	t.Helper()

	res := PerformRequest(t, s, http.MethodPost, "/auth/signup", GenericPayload{
		"email":     email,
		"username":  username,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "correct horse battery",
	}, nil)
	require.Equalf(t, http.StatusOK, res.Result().StatusCode, "signup failed: %s", res.Body.String())

	otp := LastOTP(t, s, email)

	res = PerformRequest(t, s, http.MethodPost, "/auth/verify-otp", GenericPayload{
		"email": email,
		"otp":   otp,
	}, nil)
	require.Equalf(t, http.StatusOK, res.Result().StatusCode, "verify failed: %s", res.Body.String())

	var body types.PostVerifyOtpResponse
	ParseResponseAndValidate(t, res, &body)

	return &SignupResult{
		Email:      email,
		Token:      *body.Token,
		UserID:     body.User.ID.String(),
		Address:    *body.User.WalletAddress,
		SeedPhrase: *body.SeedPhrase,
	}
}
