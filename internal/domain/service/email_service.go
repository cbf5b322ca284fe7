package service

import (
	"fmt"
	"net/smtp"

	"bizbid/pkg/errors"
)

// Mailer is the notification collaborator. Callers decide whether a send
// failure is fatal: OTP delivery surfaces errors, listing notifications are
// fire-and-forget.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return errors.Upstream("Failed to send email", err)
	}
	return nil
}
