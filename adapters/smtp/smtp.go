package smtp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/lborres/bantay/core"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the envelope and header sender
	From string
	// SSL dials with implicit TLS (port 465) instead of STARTTLS
	SSL bool
}

// Mailer sends plain text mail through an SMTP relay
type Mailer struct {
	cfg  Config
	opts []mail.Option
	now  func() time.Time
}

var _ core.Mailer = (*Mailer)(nil)

func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
		if cfg.SSL {
			cfg.Port = 465
		}
	}
	return &Mailer{cfg: cfg, opts: clientOptions(cfg), now: time.Now}, nil
}

func clientOptions(cfg Config) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return opts
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(m.cfg.From, to, subject, body, m.now())
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// buildMessage renders a UTF-8 plain text message
func buildMessage(from, to, subject, body string, date time.Time) (*mail.Msg, error) {
	if strings.ContainsAny(subject, "\r\n") {
		return nil, fmt.Errorf("subject contains a line break: %q", subject)
	}

	msg := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetDateWithValue(date)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
