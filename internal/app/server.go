package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/lborres/bantay"
	fiberadapter "github.com/lborres/bantay/adapters/fiber"
	smtpadapter "github.com/lborres/bantay/adapters/smtp"
	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func accessLogFormat() string {
	format := []string{
		// Timestamp & Request ID
		"${time}|${requestid}",

		// Response metadata
		"${status}|${latency}",

		// Client info
		"${ip}:${port}",

		// Transfer size
		"${bytesReceived}|${bytesSent}",

		// Request details, without query params: they carry codes
		"${method}|${path}",

		// errors
		"${error}",
	}
	return strings.Join(format, "|") + "\n"
}

// NewServer assembles the fiber app, the engine and its routes
func NewServer(cfg *core.Config, store core.CredentialStore, log logging.Logger) (*fiber.App, *bantay.Bantay, error) {
	hasher, err := bantay.PasswordHandlerFor(cfg.PasswordAlgorithm)
	if err != nil {
		return nil, nil, err
	}

	var mailer core.Mailer
	if cfg.SMTP.Host != "" {
		mailer, err = smtpadapter.New(smtpadapter.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			SSL:      cfg.SMTP.SSL,
			From:     cfg.EmailOrigin,
		})
		if err != nil {
			return nil, nil, err
		}
	} else {
		log.Warn(context.Background(), "smtp host not set, activation mails are disabled")
	}

	app := fiber.New()
	app.Use(recoverer.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: accessLogFormat(),
		CustomTags: map[string]logger.LogFunc{
			"requestid": func(output logger.Buffer, c fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				return output.WriteString(requestid.FromContext(c))
			},
		},
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))

	var clientCache bantay.ClientCache
	if cfg.ClientCacheTTL > 0 {
		clientCache = bantay.NewInMemoryCache(bantay.CacheConfig{
			TTL:     cfg.ClientCacheTTL,
			MaxSize: 500,
		})
	}

	b, err := bantay.New(bantay.Config{
		CypherKey:              cfg.CypherKey,
		TokenLifetime:          cfg.TokenTTL(),
		AuthCodeLifetime:       cfg.AuthCodeTTL(),
		ActivationCodeLifetime: cfg.ActivationCodeTTL(),
		Store:                  store,
		HTTP: fiberadapter.New(app, fiberadapter.Config{
			Logger:  log.With("component", "http"),
			Mailer:  mailer,
			BaseURL: cfg.BaseURL,
		}),
		BasePath:       cfg.BasePath,
		PasswordHasher: hasher,
		ClientCache:    clientCache,
	})
	if err != nil {
		return nil, nil, err
	}

	return app, b, nil
}

// Serve runs app until ctx is cancelled, then shuts it down gracefully
func Serve(ctx context.Context, app *fiber.App, addr string, log logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.Info(ctx, "listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}
