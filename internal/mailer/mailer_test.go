package mailer_test

import (
	"context"
	"testing"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/i18n"
	"github.com/JojoFlex1/done/internal/mailer"
	"github.com/JojoFlex1/done/internal/mailer/transport"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestMailer(t *testing.T) (*mailer.Mailer, *transport.MockMailTransport) {
	t.Helper()

	i, err := i18n.New(config.I18n{DefaultLanguage: language.English})
	require.NoError(t, err)

	mock := transport.NewMock()
	m, err := mailer.New(config.Mailer{DefaultSender: "noreply@reloop.app"}, mock, i)
	require.NoError(t, err)

	return m, mock
}

func TestSendOTP(t *testing.T) {
	m, mock := newTestMailer(t)

	err := m.SendOTP(context.Background(), language.English, "ada@example.com", "Ada", "123456", 10*time.Minute)
	require.NoError(t, err)

	mail := mock.GetLastSentMail()
	require.NotNil(t, mail)
	assert.Equal(t, "noreply@reloop.app", mail.From)
	assert.Equal(t, []string{"ada@example.com"}, mail.To)
	assert.Equal(t, "RELOOP - Email Verification Code", mail.Subject)
	assert.Contains(t, string(mail.HTML), "123456")
	assert.Contains(t, string(mail.HTML), "Hello Ada!")
	assert.Contains(t, string(mail.Text), "This code expires in 10 minutes.")
}

func TestSendOTPEscapesName(t *testing.T) {
	m, mock := newTestMailer(t)

	err := m.SendOTP(context.Background(), language.English, "ada@example.com", "<b>Ada</b>", "123456", 10*time.Minute)
	require.NoError(t, err)

	mail := mock.GetLastSentMail()
	require.NotNil(t, mail)
	assert.NotContains(t, string(mail.HTML), "<b>Ada</b>")
}

func TestSendOTPGerman(t *testing.T) {
	m, mock := newTestMailer(t)

	err := m.SendOTP(context.Background(), language.German, "ada@example.com", "Ada", "654321", time.Minute)
	require.NoError(t, err)

	mail := mock.GetLastSentMail()
	require.NotNil(t, mail)
	assert.Contains(t, string(mail.Text), "Hallo Ada!")
	assert.Contains(t, string(mail.Text), "Dieser Code läuft in 1 Minute ab.")
}

func TestSendOTPTransportFailure(t *testing.T) {
	m, mock := newTestMailer(t)
	mock.FailWith(errors.New("smtp down"))

	err := m.SendOTP(context.Background(), language.English, "ada@example.com", "Ada", "123456", 10*time.Minute)
	require.Error(t, err)
	assert.Empty(t, mock.GetSentMails())
}
