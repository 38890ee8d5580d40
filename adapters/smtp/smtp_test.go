package smtp

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantPort int
		wantErr  bool
	}{
		{name: "valid", cfg: Config{Host: "smtp.example", From: "no-reply@example"}, wantPort: 587},
		{name: "implicit tls", cfg: Config{Host: "smtp.example", From: "no-reply@example", SSL: true}, wantPort: 465},
		{name: "explicit port", cfg: Config{Host: "smtp.example", From: "no-reply@example", Port: 2525}, wantPort: 2525},
		{name: "missing host", cfg: Config{From: "no-reply@example"}, wantErr: true},
		{name: "missing sender", cfg: Config{Host: "smtp.example"}, wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			m, err := New(test.cfg)
			if (err != nil) != test.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, test.wantErr)
			}
			if err == nil && m.cfg.Port != test.wantPort {
				t.Errorf("port = %d, want %d", m.cfg.Port, test.wantPort)
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	anonymous := clientOptions(Config{Host: "smtp.example", Port: 587})
	authenticated := clientOptions(Config{Host: "smtp.example", Port: 587, Username: "u", Password: "p"})
	if len(authenticated) <= len(anonymous) {
		t.Errorf("credentials should add auth options: %d <= %d", len(authenticated), len(anonymous))
	}
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	msg, err := buildMessage("no-reply@example.com", "a@x.io", "Activation code", "Here is your activation code!\nhttps://sso.example/activate?code=abc\n", date)
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"no-reply@example.com",
		"a@x.io",
		"Subject: Activation code",
		"01 Mar 2024 12:00:00",
		"text/plain",
		"Here is your activation code!",
		"https://sso.example/activate?code=abc",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("message missing %q:\n%s", want, got)
		}
	}
}

// Requirement: header injection through user supplied values is refused
func TestBuildMessage_RejectsHeaderInjection(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		subject string
	}{
		{name: "recipient", to: "a@x.io\r\nBcc: victim@x.io", subject: "Activation code"},
		{name: "subject", to: "a@x.io", subject: "Activation code\r\nBcc: victim@x.io"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := buildMessage("no-reply@example.com", test.to, test.subject, "body", time.Now()); err == nil {
				t.Fatal("buildMessage() should reject line breaks in headers")
			}
		})
	}
}

func TestSend_CancelledContext(t *testing.T) {
	m, err := New(Config{Host: "127.0.0.1", Port: 1, From: "no-reply@example.com"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, "a@x.io", "s", "b"); err == nil {
		t.Fatal("Send() should fail on a cancelled context")
	}
}
