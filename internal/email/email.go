// Package email provides functionality for sending emails via SMTP.
package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
)

// Sender defines the interface for sending emails.
type Sender interface {
	Send(to []string, subject, body string) error
}

// Config holds the SMTP configuration.
// TLS usage is inferred from the port: 587 and 465 use TLS,
// everything else goes in the clear.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implements the Sender interface using SMTP.
type SMTPSender struct {
	config Config
}

// NewSMTPSender creates a new SMTP email sender.
func NewSMTPSender(config Config) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send sends an email to the specified recipients.
func (s *SMTPSender) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	message := s.buildMessage(to, subject, body)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.Port == 587 || s.config.Port == 465 {
		return s.sendWithTLS(addr, auth, to, message)
	}

	return smtp.SendMail(addr, auth, s.config.From, to, message)
}

// WelcomeBody renders the greeting mail sent after signup.
func WelcomeBody(username string) (subject, body string) {
	subject = "Welcome to Platefeed"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your Platefeed account is ready. "+
			"Publish a recipe or start filling your shopping cart.</p>", username)
	return subject, body
}

func (s *SMTPSender) buildMessage(to []string, subject, body string) []byte {
	recipients := to[0]
	for i := 1; i < len(to); i++ {
		recipients += ", " + to[i]
	}

	message := fmt.Sprintf("From: %s\r\n", s.config.From)
	message += fmt.Sprintf("To: %s\r\n", recipients)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/html; charset=UTF-8\r\n"
	message += "\r\n" + body

	return []byte(message)
}

func (s *SMTPSender) sendWithTLS(addr string, auth smtp.Auth, to []string, message []byte) error {
	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
