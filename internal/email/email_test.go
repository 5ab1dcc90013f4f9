package email

import (
	"strings"
	"testing"
)

func TestNewSMTPSender(t *testing.T) {
	config := Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user@example.com",
		Password: "password",
		From:     "sender@example.com",
	}

	sender := NewSMTPSender(config)
	if sender == nil {
		t.Fatal("expected sender to be created, got nil")
	}

	if sender.config.Host != config.Host {
		t.Errorf("expected host %s, got %s", config.Host, sender.config.Host)
	}
	if sender.config.Port != config.Port {
		t.Errorf("expected port %d, got %d", config.Port, sender.config.Port)
	}
}

func TestBuildMessage(t *testing.T) {
	sender := &SMTPSender{
		config: Config{
			From: "sender@example.com",
		},
	}

	tests := []struct {
		name    string
		to      []string
		subject string
		body    string
		wantTo  string
	}{
		{
			name:    "single recipient",
			to:      []string{"recipient@example.com"},
			subject: "Test Subject",
			body:    "Test Body",
			wantTo:  "To: recipient@example.com\r\n",
		},
		{
			name:    "multiple recipients",
			to:      []string{"one@example.com", "two@example.com"},
			subject: "Test Subject",
			body:    "Test Body",
			wantTo:  "To: one@example.com, two@example.com\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := string(sender.buildMessage(tt.to, tt.subject, tt.body))

			if !strings.Contains(message, "From: sender@example.com\r\n") {
				t.Error("message lacks From header")
			}
			if !strings.Contains(message, tt.wantTo) {
				t.Errorf("message lacks To header %q", tt.wantTo)
			}
			if !strings.Contains(message, "Subject: "+tt.subject+"\r\n") {
				t.Error("message lacks Subject header")
			}
			if !strings.HasSuffix(message, "\r\n"+tt.body) {
				t.Error("message body is not separated from headers")
			}
		})
	}
}

func TestSendRequiresRecipients(t *testing.T) {
	sender := NewSMTPSender(Config{Host: "smtp.example.com", Port: 25, From: "a@b.c"})
	if err := sender.Send(nil, "subject", "body"); err == nil {
		t.Error("Send() with no recipients succeeded, want error")
	}
}

func TestWelcomeBody(t *testing.T) {
	subject, body := WelcomeBody("chef")
	if subject == "" {
		t.Error("subject is empty")
	}
	if !strings.Contains(body, "chef") {
		t.Errorf("body %q does not mention the username", body)
	}
}
