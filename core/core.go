package core

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const MinSecretLen = 32

// Config is loaded once at process start and never mutated afterwards.
type Config struct {
	CypherKey              string `env:"BANTAY_CYPHER_KEY"`
	TokenLifetime          int64  `env:"BANTAY_TOKEN_LIFETIME"           envDefault:"3600"`  // seconds
	AuthCodeLifetime       int64  `env:"BANTAY_AUTH_CODE_LIFETIME"       envDefault:"60"`    // seconds
	ActivationCodeLifetime int64  `env:"BANTAY_ACTIVATION_CODE_LIFETIME" envDefault:"86400"` // seconds

	BaseURL     string `env:"BANTAY_BASE_URL"    envDefault:"http://localhost:8080/sso"`
	BasePath    string `env:"BANTAY_BASE_PATH"   envDefault:"/sso"`
	ListenAddr  string `env:"BANTAY_LISTEN_ADDR" envDefault:":8080"`
	EmailOrigin string `env:"BANTAY_EMAIL_ORIGIN" envDefault:"no-reply@localhost"`
	LogLevel    string `env:"BANTAY_LOG_LEVEL"   envDefault:"info"`

	PasswordAlgorithm string        `env:"BANTAY_PASSWORD_ALGORITHM" envDefault:"bcrypt"`
	ClientCacheTTL    time.Duration `env:"BANTAY_CLIENT_CACHE_TTL"   envDefault:"0s"` // 0 disables the cache

	Database DatabaseConfig
	SMTP     SMTPConfig
}

type DatabaseConfig struct {
	Driver string `env:"BANTAY_DATABASE_DRIVER" envDefault:"postgres"` // postgres | sqlite
	URL    string `env:"BANTAY_DATABASE_URL"    envDefault:"postgres://localhost:5432/bantay?sslmode=disable"`
}

type SMTPConfig struct {
	Host     string `env:"BANTAY_SMTP_HOST"`
	Port     int    `env:"BANTAY_SMTP_PORT"` // 0 picks 587, or 465 with SSL
	Username string `env:"BANTAY_SMTP_USERNAME"`
	Password string `env:"BANTAY_SMTP_PASSWORD"`
	SSL      bool   `env:"BANTAY_SMTP_SSL"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CypherKey == "" {
		return ErrSecretRequired
	}
	if len(c.CypherKey) < MinSecretLen {
		return fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, MinSecretLen)
	}
	lifetimes := []struct {
		name  string
		value int64
	}{
		{"token lifetime", c.TokenLifetime},
		{"auth code lifetime", c.AuthCodeLifetime},
		{"activation code lifetime", c.ActivationCodeLifetime},
	}
	for _, l := range lifetimes {
		if l.value <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidLifetime, l.name)
		}
	}
	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenLifetime) * time.Second
}

func (c *Config) AuthCodeTTL() time.Duration {
	return time.Duration(c.AuthCodeLifetime) * time.Second
}

func (c *Config) ActivationCodeTTL() time.Duration {
	return time.Duration(c.ActivationCodeLifetime) * time.Second
}
