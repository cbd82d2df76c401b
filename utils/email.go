package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"

	"github.com/outingclub/trips-backend/config"
)

// ======================
// 📧 Officer notification mailer
// ======================

// Mailer delivers plain-text notifications to the officer mailbox over SMTP.
// When SMTP is not configured it logs and drops the message instead of
// failing the request that triggered it.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromName  string
	fromEmail string
	to        string
}

func NewMailer(cfg *config.Config) *Mailer {
	fromEmail := cfg.SMTPFromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTPUsername
	}
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: fromEmail,
		to:        cfg.NotifyEmail,
	}
}

// Notify sends one message to the configured officer address.
func (m *Mailer) Notify(subject, body string) error {
	if m.host == "" || m.username == "" || m.password == "" || m.to == "" {
		log.Printf("⚠️ SMTP not configured, dropping notification %q", subject)
		return nil
	}
	return m.send(m.to, subject, body)
}

// send dials the server, upgrades with StartTLS, authenticates, and writes
// one plain-text message.
func (m *Mailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.host,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Printf("⚠️ SMTP QUIT error (non-critical): %v", err)
	}

	log.Printf("✅ Notification email sent: %q", subject)
	return nil
}
