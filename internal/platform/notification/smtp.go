package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers email over plain SMTP with optional AUTH PLAIN.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SendEmail sends a single text message. The context deadline is respected
// only between messages; net/smtp itself does not take a context, so the
// dispatcher bounds the call with its own timeout goroutine.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
