package fiber

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/services"
)

const (
	csrfCookie  = "csrf"
	mailTimeout = 30 * time.Second
)

type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type exchangeInput struct {
	AuthCode     string `json:"auth_code" form:"auth_code"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
}

type authorizeInput struct {
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password"`
	ClientID    string `json:"client_id" form:"client_id"`
	RedirectURI string `json:"redirect_uri" form:"redirect_uri"`
}

type registerInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type resendInput struct {
	Username string `json:"username" form:"username"`
}

type inspectInput struct {
	AccessToken string `json:"access_token" form:"access_token"`
}

// handleLogin returns a handler for the password grant
func (a *Adapter) handleLogin(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input loginInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		pair, err := h.GetToken(c.Context(), input.Username, input.Password)
		if err != nil {
			return a.handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(pair)
	}
}

// handleExchangeToken returns a handler trading an authorization code for tokens
func (a *Adapter) handleExchangeToken(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input exchangeInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		pair, err := h.ExchangeToken(c.Context(), input.AuthCode, input.ClientSecret)
		if err != nil {
			return a.handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(pair)
	}
}

// handleAuthorizeForm renders the login form a client sends its users to
func (a *Adapter) handleAuthorizeForm(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		clientID := c.Query("client_id")
		redirectURI := c.Query("redirect_uri")

		ok, err := h.CheckRedirectURI(c.Context(), clientID, redirectURI)
		if err != nil {
			return a.handleAuthError(c, err)
		}
		if !ok {
			return a.handleAuthError(c, core.ErrInvalidRedirectURI)
		}

		return renderHTML(c, http.StatusOK, authorizeForm, authorizeFormData{
			ClientID:    clientID,
			RedirectURI: redirectURI,
		})
	}
}

// handleAuthorize verifies the submitted credentials and sends the browser
// back to the client with an authorization code.
func (a *Adapter) handleAuthorize(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input authorizeInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		code, err := h.GetAuthorizationCode(c.Context(), input.Username, input.Password, input.ClientID, input.RedirectURI)
		if err != nil {
			return a.handleAuthError(c, err)
		}

		location, err := withAuthCode(input.RedirectURI, code)
		if err != nil {
			return a.handleAuthError(c, core.ErrInvalidRedirectURI)
		}

		return c.Redirect().Status(http.StatusFound).To(location)
	}
}

// handleRegisterForm renders the registration form and plants the csrf
// cookie the submit handler requires.
func handleRegisterForm() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     csrfCookie,
			Value:    "1",
			SameSite: fiber.CookieSameSiteStrictMode,
			HTTPOnly: true,
		})
		return renderHTML(c, http.StatusOK, registerForm, nil)
	}
}

// handleRegister creates the user and mails the activation link once the
// response is on its way.
func (a *Adapter) handleRegister(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		// The cookie is SameSite=Strict, so a cross-site form post arrives without it.
		if c.Cookies(csrfCookie) == "" {
			return a.handleAuthError(c, core.ErrMissingCSRFCookie)
		}

		var input registerInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		if err := h.Register(c.Context(), input.Username, input.Email, input.Password); err != nil {
			return a.handleAuthError(c, err)
		}

		a.cfg.Logger.Info(c.Context(), "user registered", "username", input.Username)
		go a.sendActivation(h, input.Username)

		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"message": "registration completed, check your email to activate the account",
		})
	}
}

// handleActivate activates with ?code=, or renders the resend form without it
func (a *Adapter) handleActivate(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		code := c.Query("code")
		if code == "" {
			return renderHTML(c, http.StatusOK, resendForm, resendFormData{})
		}

		if _, err := h.Activate(c.Context(), code); err != nil {
			return a.handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).SendString("Activated!")
	}
}

// handleResendActivation mails a fresh activation link and re-renders the
// form with the outcome.
func (a *Adapter) handleResendActivation(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input resendInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		email, code, err := h.GetActivationCodeWithEmail(c.Context(), input.Username)
		if err != nil {
			return renderHTML(c, mapErrorToStatus(err), resendForm, resendFormData{Message: publicMessage(err)})
		}

		go a.mailActivation(email, code)

		return renderHTML(c, http.StatusOK, resendForm, resendFormData{Message: "Success!"})
	}
}

// handleInspect returns the decoded payload of a valid access token
func (a *Adapter) handleInspect(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input inspectInput
		if err := c.Bind().Body(&input); err != nil {
			return badRequestBody(c)
		}

		payload, err := h.Inspect(c.Context(), input.AccessToken)
		if err != nil {
			return a.handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(payload)
	}
}

// sendActivation issues a code for a freshly registered user and mails it
func (a *Adapter) sendActivation(h core.AuthHandler, username string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	email, code, err := h.GetActivationCodeWithEmail(ctx, username)
	if err != nil {
		a.cfg.Logger.Error(ctx, "failed to issue activation code", "username", username, "error", err)
		return
	}
	a.deliver(ctx, email, code)
}

func (a *Adapter) mailActivation(email, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()
	a.deliver(ctx, email, code)
}

// deliver never reports back to the request; failures only reach the log
func (a *Adapter) deliver(ctx context.Context, email, code string) {
	if a.cfg.Mailer == nil {
		a.cfg.Logger.Warn(ctx, "mailer not configured, activation mail dropped", "email", email)
		return
	}
	link := services.ActivationURL(a.cfg.BaseURL, code)
	if err := services.SendActivationMail(ctx, a.cfg.Mailer, email, link); err != nil {
		a.cfg.Logger.Error(ctx, "activation mail failed", "email", email, "error", err)
		return
	}
	a.cfg.Logger.Debug(ctx, "activation mail sent", "email", email)
}

// withAuthCode appends auth_code to the client's redirect, keeping its query
func withAuthCode(redirectURI, code string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("auth_code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// extractToken extracts the bearer token from the Authorization header.
func extractToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", core.ErrMissingAuthHeader
	}
	if len(authHeader) <= 7 || authHeader[:7] != "Bearer " {
		return "", core.ErrInvalidAuthHeader
	}
	return authHeader[7:], nil
}

func badRequestBody(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(core.ErrorResponse{Error: "invalid request body"})
}

// handleAuthError maps engine errors to HTTP responses. Server faults are
// logged with their cause and answered with a generic message.
func (a *Adapter) handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		a.cfg.Logger.Error(c.Context(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(core.ErrorResponse{Error: publicMessage(err)})
}

// publicMessage hides the cause of server faults from clients
func publicMessage(err error) string {
	if mapErrorToStatus(err) >= http.StatusInternalServerError {
		return core.ErrInternal.Error()
	}
	return err.Error()
}

// mapErrorToStatus maps engine error kinds to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrWrongPassword),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrInvalidRedirectURI),
		errors.Is(err, core.ErrInvalidClientID),
		errors.Is(err, core.ErrUserAlreadyExist),
		errors.Is(err, core.ErrUserAlreadyActivated),
		errors.Is(err, core.ErrMissingCSRFCookie):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrExpiredToken),
		errors.Is(err, core.ErrNotActivated),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidAuthHeader):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
