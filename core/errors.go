package core

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrNotFound             = errors.New("not found")                // 404 Not Found
	ErrNotActivated         = errors.New("not activated")            // 401 Unauthorized
	ErrWrongPassword        = errors.New("wrong password")           // 400 Bad Request
	ErrUserAlreadyExist     = errors.New("user/email already exist") // 400 Bad Request
	ErrUserAlreadyActivated = errors.New("user already activated")   // 400 Bad Request
	ErrCrypto               = errors.New("password hashing failed")  // 500
	ErrInternal             = errors.New("internal error")           // 500
)

// Artifact errors
var (
	ErrInvalidToken       = errors.New("invalid token")        // 400 Bad Request
	ErrExpiredToken       = errors.New("expired token")        // 401 Unauthorized
	ErrInvalidRedirectURI = errors.New("invalid redirect uri") // 400 Bad Request
	ErrInvalidClientID    = errors.New("invalid client id")    // 400 Bad Request
)

// Transport errors
var (
	ErrMissingAuthHeader = errors.New("missing authorization header") // 401 Unauthorized
	ErrInvalidAuthHeader = errors.New("invalid authorization header") // 401 Unauthorized
	ErrMissingCSRFCookie = errors.New("missing csrf cookie")          // 400 Bad Request
)

var (
	ErrCacheNotFound = errors.New("client not found in cache")
)

// Config errors (server-side configuration)
var (
	ErrStoreRequired       = errors.New("credential store is required") // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")     // 500
	ErrUnknownAlgorithm    = errors.New("unknown password algorithm")   // 500
	ErrSecretRequired      = errors.New("cypher key is required")       // 500
	ErrSecretTooShort      = errors.New("cypher key too short")         // 500
	ErrInvalidLifetime     = errors.New("lifetime must be positive")    // 500
)

// Internal wraps a store, serialization or clock failure. Callers can match
// ErrInternal; the cause survives as text only, so driver error types do not
// leak past the engine.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrInternal, err)
}
