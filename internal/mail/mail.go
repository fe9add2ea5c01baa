// Package mail forwards contact-form submissions by SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when no SMTP credentials are set.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Contact is the submission being forwarded.
type Contact struct {
	Name    string
	Email   string
	Message string
}

// Sender delivers contact submissions.
type Sender interface {
	Send(ctx context.Context, c Contact) error
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTPSender sends through an authenticated SMTP relay.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender for cfg.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Configured reports whether credentials are present.
func (s *SMTPSender) Configured() bool {
	return s.cfg.User != "" && s.cfg.Pass != ""
}

// Send mails c to the configured inbox with Reply-To set to the visitor.
func (s *SMTPSender) Send(ctx context.Context, c Contact) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := Compose(s.cfg.User, s.cfg.To, c)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			log.Printf("Error sending email: %v", err)
			return fmt.Errorf("send mail: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	log.Printf("Email sent successfully from %s (%s)", c.Name, c.Email)
	return nil
}

// Compose builds the RFC 822 message for c.
func Compose(from, to string, c Contact) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(c.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, c.Name, c.Email, c.Message)

	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(c.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so visitor input cannot add headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
