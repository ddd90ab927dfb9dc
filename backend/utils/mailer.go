package utils

import (
	"fmt"
	"net"
	"net/smtp"
	"ratemyschedule/backend/config"
	"strings"
)

// Mail is a plain-text message to the contact inbox.
type Mail struct {
	ReplyTo string
	Subject string
	Body    string
}

type Mailer interface {
	Send(m Mail) error
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	to   string
}

// NewMailer returns nil when SMTP is not fully configured.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.SMTPConfigured() {
		return nil
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort),
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost),
		from: cfg.SMTPUser,
		to:   cfg.ContactInbox,
	}
}

func (m *SMTPMailer) Send(mail Mail) error {
	return smtp.SendMail(m.addr, m.auth, m.from, []string{m.to}, m.message(mail))
}

func (m *SMTPMailer) message(mail Mail) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"RateMySchedule\" <%s>\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	if mail.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerSafe(mail.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", headerSafe(mail.Subject))
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(mail.Body)
	return []byte(b.String())
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
