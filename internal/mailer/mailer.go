package mailer

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/i18n"
	"github.com/JojoFlex1/done/internal/mailer/transport"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/jordan-wright/email"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var ErrEmailTemplateNotFound = errors.New("email template not found")

type Mailer struct {
	Config    config.Mailer
	Transport transport.MailTransporter
	i18n      *i18n.Service
	html      *htmltemplate.Template
	text      *template.Template
}

func New(cfg config.Mailer, t transport.MailTransporter, i *i18n.Service) (*Mailer, error) {
	html, err := htmltemplate.ParseFS(templatesFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html mail templates")
	}

	text, err := template.ParseFS(templatesFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse text mail templates")
	}

	return &Mailer{
		Config:    cfg,
		Transport: t,
		i18n:      i,
		html:      html,
		text:      text,
	}, nil
}

type otpTemplateData struct {
	Tagline  string
	Greeting string
	Intro    string
	OTP      string
	Expiry   string
}

// SendOTP mails a signup verification code. The code itself is never logged.
func (m *Mailer) SendOTP(ctx context.Context, lang language.Tag, to string, firstName string, otp string, ttl time.Duration) error {
	log := util.LogFromContext(ctx).With().Str("template", "otp").Logger()

	minutes := int(ttl.Round(time.Minute) / time.Minute)
	data := otpTemplateData{
		Tagline:  m.i18n.Translate(lang, "OTPMailTagline"),
		Greeting: m.i18n.Translate(lang, "OTPMailGreeting", i18n.Data{"FirstName": firstName}),
		Intro:    m.i18n.Translate(lang, "OTPMailIntro"),
		OTP:      otp,
		Expiry:   m.i18n.TranslatePlural(lang, "OTPMailExpiry", minutes, i18n.Data{"Minutes": minutes}),
	}

	mail := email.NewEmail()
	mail.From = m.Config.DefaultSender
	mail.To = []string{to}
	mail.Subject = m.i18n.Translate(lang, "OTPMailSubject")

	var err error
	mail.HTML, err = m.render(m.html.Lookup("otp.html.tmpl"), data)
	if err != nil {
		return err
	}

	mail.Text, err = m.renderText(m.text.Lookup("otp.txt.tmpl"), data)
	if err != nil {
		return err
	}

	if err := m.Transport.Send(mail); err != nil {
		log.Error().Err(err).Msg("Failed to send verification mail")
		return errors.Wrap(err, "failed to send verification mail")
	}

	log.Debug().Msg("Sent verification mail")

	return nil
}

func (m *Mailer) render(t *htmltemplate.Template, data any) ([]byte, error) {
	if t == nil {
		return nil, ErrEmailTemplateNotFound
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to execute html template")
	}

	return buf.Bytes(), nil
}

func (m *Mailer) renderText(t *template.Template, data any) ([]byte, error) {
	if t == nil {
		return nil, ErrEmailTemplateNotFound
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to execute text template")
	}

	return buf.Bytes(), nil
}
