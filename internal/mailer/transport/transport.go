package transport

import "github.com/jordan-wright/email"

// MailTransporter delivers a rendered mail.
type MailTransporter interface {
	Send(mail *email.Email) error
}
