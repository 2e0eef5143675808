package transport

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/jordan-wright/email"
	"github.com/pkg/errors"
)

type SMTPMailTransport struct {
	config config.SMTP
	addr   string
	auth   smtp.Auth
}

func NewSMTP(cfg config.SMTP) *SMTPMailTransport {
	m := &SMTPMailTransport{
		config: cfg,
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}

	if len(cfg.Username) > 0 {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return m
}

func (m *SMTPMailTransport) Send(mail *email.Email) error {
	var err error
	if m.config.UseTLS {
		err = mail.SendWithTLS(m.addr, m.auth, &tls.Config{ServerName: m.config.Host, MinVersion: tls.VersionTLS12})
	} else {
		err = mail.Send(m.addr, m.auth)
	}
	if err != nil {
		return errors.Wrap(err, "failed to send mail via smtp")
	}

	return nil
}
