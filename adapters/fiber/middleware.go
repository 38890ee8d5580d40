package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay/core"
)

// TokenLocal is the c.Locals key holding the *core.TokenPayload of the caller
const TokenLocal = "token"

// Protected creates a Fiber middleware that validates the bearer access token
// and stores its payload in the context for downstream handlers.
func (a *Adapter) Protected(h core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return a.handleAuthError(c, err)
		}

		payload, err := h.Inspect(c.Context(), token)
		if err != nil {
			if mapErrorToStatus(err) >= http.StatusInternalServerError {
				return a.handleAuthError(c, err)
			}
			// any rejected token is an authentication failure here
			return c.Status(http.StatusUnauthorized).JSON(core.ErrorResponse{Error: err.Error()})
		}

		c.Locals(TokenLocal, payload)

		return c.Next()
	}
}

// TokenFromContext returns the payload stored by Protected
func TokenFromContext(c fiber.Ctx) (*core.TokenPayload, bool) {
	payload, ok := c.Locals(TokenLocal).(*core.TokenPayload)
	return payload, ok
}
