package email

import (
	"context"
	"net/url"
	"passreset/internal/core/domain/user"

	"gopkg.in/gomail.v2"
)

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewDialer(host string, port int, username string, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

type SMTPSender struct {
	dialer  Dialer
	sender  string
	baseURL url.URL
}

func NewSMTPSender(dialer Dialer, sender string, baseURL url.URL) *SMTPSender {
	return &SMTPSender{dialer: dialer, sender: sender, baseURL: baseURL}
}

func (s *SMTPSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := newPasswordResetMessage(s.baseURL, u, token)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.sender)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	msg.AddAlternative("text/html", m.HTML)

	return s.dialer.DialAndSend(msg)
}
