// Package email delivers one-time recovery codes through an external SMTP
// relay. Delivery is synchronous and best-effort: the caller decides what a
// failed send means for the flow in progress.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Config captures the relay settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender implements the code-sender port over net/smtp with PLAIN auth.
type SMTPSender struct {
	cfg  Config
	auth smtp.Auth

	// send is swappable in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{cfg: cfg, auth: auth, send: smtp.SendMail}
}

// SendResetCode emails the plaintext one-time code to recipient. The context
// is observed up front only; net/smtp does not support mid-flight
// cancellation.
func (s *SMTPSender) SendResetCode(ctx context.Context, recipient, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.cfg.From, recipient, code)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.send(addr, s.auth, s.cfg.From, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

func buildMessage(from, to, code string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Your password reset code\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your one-time password reset code is %s.\r\n", code)
	b.WriteString("The code expires shortly; request a new one if it is rejected.\r\n")
	return []byte(b.String())
}
