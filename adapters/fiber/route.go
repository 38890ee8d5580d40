package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/internal/logging"
	"github.com/lborres/bantay/services"
)

// Config carries what the handlers need beyond the engine itself.
type Config struct {
	Logger logging.Logger
	// Mailer delivers activation links. Nil disables mailing.
	Mailer core.Mailer
	// BaseURL is the public URL of the base path, used in activation links.
	BaseURL string
}

type Adapter struct {
	app *fiber.App
	cfg Config
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App, cfg Config) *Adapter {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	return &Adapter{app: app, cfg: cfg}
}

// RegisterRoutes binds a handler to every endpoint in the registry under
// basePath.
func (a *Adapter) RegisterRoutes(handler core.AuthHandler, basePath string) error {
	handlers := map[string]fiber.Handler{
		services.OpLogin:            a.handleLogin(handler),
		services.OpExchangeToken:    a.handleExchangeToken(handler),
		services.OpAuthorizeForm:    a.handleAuthorizeForm(handler),
		services.OpAuthorize:        a.handleAuthorize(handler),
		services.OpRegisterForm:     handleRegisterForm(),
		services.OpRegister:         a.handleRegister(handler),
		services.OpActivate:         a.handleActivate(handler),
		services.OpResendActivation: a.handleResendActivation(handler),
		services.OpInspect:          a.handleInspect(handler),
	}

	api := a.app.Group(basePath)
	for _, ep := range services.NewEndpointRegistry().Endpoints() {
		h, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q", ep.Metadata.OperationID)
		}
		api.Add([]string{ep.Method}, ep.Path, h)
	}

	return nil
}
