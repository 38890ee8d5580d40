package fiber

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/bantay/core"
)

// Requirement: Protected admits only requests carrying a valid bearer access token
func TestProtected(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		mock       *mockAuthHandler
		wantStatus int
	}{
		{name: "valid token", header: "Bearer at", mock: &mockAuthHandler{payload: &core.TokenPayload{Username: "alice"}}, wantStatus: http.StatusOK},
		{name: "missing header", header: "", mock: &mockAuthHandler{}, wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", mock: &mockAuthHandler{}, wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", mock: &mockAuthHandler{inspectErr: core.ErrInvalidToken}, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer old", mock: &mockAuthHandler{inspectErr: core.ErrExpiredToken}, wantStatus: http.StatusUnauthorized},
		{name: "engine fault", header: "Bearer at", mock: &mockAuthHandler{inspectErr: errors.New("boom")}, wantStatus: http.StatusInternalServerError},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			app := fiber.New()
			adapter := New(app, Config{})
			app.Get("/me", adapter.Protected(test.mock), func(c fiber.Ctx) error {
				payload, ok := TokenFromContext(c)
				if !ok {
					return c.SendStatus(http.StatusTeapot)
				}
				return c.SendString(payload.Username)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}

			// Act
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			// Assert
			if resp.StatusCode != test.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
		})
	}
}
