package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// CRYPTO PORTS
// ============================================

// PasswordHandler hashes and verifies salted passwords
type PasswordHandler interface {
	Hash(password, salt string) (string, error)
	// Verify returns false without error on mismatch, and an error only when
	// the stored hash cannot be parsed.
	Verify(hash, password, salt string) (bool, error)
}

// Cipher seals arbitrary byte payloads with the server-wide key
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// ============================================
// MAIL PORT
// ============================================

// Mailer delivers activation mails. Delivery failures never flow back into
// the authorization flow.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ============================================
// CACHE PORT
// ============================================

// ClientCache keeps client credentials close to the engine. Clients are
// immutable reference data so a TTL is the only invalidation needed.
type ClientCache interface {
	Get(clientID string) (*ClientCredential, error)
	Set(clientID string, client *ClientCredential) error
	Delete(clientID string) error
	Clear() error
}

// CacheWithStats extends ClientCache with statistics tracking
type CacheWithStats interface {
	ClientCache
	Stats() CacheStats
}

// CacheConfig configures cache behavior
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

// ============================================
// AUTH HANDLER (for HTTP adapters)
// ============================================

// AuthHandler is the surface the routing layer consumes
type AuthHandler interface {
	Register(ctx context.Context, username, email, password string) error
	GetActivationCodeWithEmail(ctx context.Context, username string) (email, code string, err error)
	Activate(ctx context.Context, code string) (int64, error)
	GetToken(ctx context.Context, username, password string) (*TokenPair, error)
	CheckRedirectURI(ctx context.Context, clientID, redirectURI string) (bool, error)
	GetAuthorizationCode(ctx context.Context, username, password, clientID, redirectURI string) (string, error)
	ExchangeToken(ctx context.Context, code, clientSecret string) (*TokenPair, error)
	Inspect(ctx context.Context, accessToken string) (*TokenPayload, error)
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath string) error
}
