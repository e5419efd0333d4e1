package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"passreset/internal/core/domain/user"
)

const passwordResetSubject = "Password Reset"

const passwordResetText = `You are receiving this because you (or someone else) have requested the reset of the password for your account.

Please click on the following link, or paste this into your browser to complete the process:

%s

If you did not request this, please ignore this email and your password will remain unchanged.
`

var passwordResetHTML = template.Must(template.New("password_reset").Parse(`<p>You are receiving this because you (or someone else) have requested the reset of the password for your account.</p>
<p>Please click on the following link, or paste this into your browser to complete the process:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>
`))

type message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// PasswordResetLink is the page the user opens to choose a new password.
func PasswordResetLink(baseURL url.URL, token user.PasswordResetToken) string {
	return baseURL.JoinPath("reset", string(token)).String()
}

func newPasswordResetMessage(baseURL url.URL, u user.User, token user.PasswordResetToken) (m message, err error) {
	if u.Email == "" {
		return m, fmt.Errorf("user %s has no email", u.ID)
	}
	if token == "" {
		return m, fmt.Errorf("empty password reset token for user %s", u.ID)
	}
	link := PasswordResetLink(baseURL, token)

	var html bytes.Buffer
	if err := passwordResetHTML.Execute(&html, struct{ Link string }{Link: link}); err != nil {
		return m, err
	}
	return message{
		To:      string(u.Email),
		Subject: passwordResetSubject,
		Text:    fmt.Sprintf(passwordResetText, link),
		HTML:    html.String(),
	}, nil
}
