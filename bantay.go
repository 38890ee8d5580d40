package bantay

import (
	"fmt"
	"strings"
	"time"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/pkg/cache"
	"github.com/lborres/bantay/pkg/crypto"
	"github.com/lborres/bantay/services"
)

// interfaces
type (
	CredentialStore = core.CredentialStore
	ClientCache     = core.ClientCache
	Mailer          = core.Mailer
	HTTPAdapter     = core.HTTPAdapter
	AuthHandler     = core.AuthHandler
	PasswordHandler = core.PasswordHandler
)

// structs
type (
	User             = core.User
	ClientCredential = core.ClientCredential
	TokenPair        = core.TokenPair
	TokenPayload     = core.TokenPayload
	CacheConfig      = core.CacheConfig
	CacheStats       = core.CacheStats
)

const (
	defaultBasePath               = "/sso"
	defaultTokenLifetime          = time.Hour
	defaultAuthCodeLifetime       = time.Minute
	defaultActivationCodeLifetime = 24 * time.Hour
)

// Password algorithms accepted by PasswordHandlerFor
const (
	AlgorithmBcrypt = "bcrypt"
	AlgorithmArgon2 = "argon2"
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache = cache.NewInMemoryCache
	NewBcrypt        = crypto.NewBcrypt
	NewArgon2        = crypto.NewArgon2
	ActivationURL    = services.ActivationURL
	LoadConfig       = core.LoadConfig
)

var (
	ErrNotFound             = core.ErrNotFound
	ErrNotActivated         = core.ErrNotActivated
	ErrWrongPassword        = core.ErrWrongPassword
	ErrUserAlreadyExist     = core.ErrUserAlreadyExist
	ErrUserAlreadyActivated = core.ErrUserAlreadyActivated
	ErrCrypto               = core.ErrCrypto
	ErrInternal             = core.ErrInternal
)

var (
	ErrInvalidToken       = core.ErrInvalidToken
	ErrExpiredToken       = core.ErrExpiredToken
	ErrInvalidRedirectURI = core.ErrInvalidRedirectURI
	ErrInvalidClientID    = core.ErrInvalidClientID
)

var (
	ErrStoreRequired    = core.ErrStoreRequired
	ErrSecretRequired   = core.ErrSecretRequired
	ErrSecretTooShort   = core.ErrSecretTooShort
	ErrInvalidLifetime  = core.ErrInvalidLifetime
	ErrUnknownAlgorithm = core.ErrUnknownAlgorithm
)

var (
	_ core.PasswordHandler = (*crypto.Bcrypt)(nil)
	_ core.PasswordHandler = (*crypto.Argon2)(nil)
	_ core.Cipher          = (*crypto.AESGCM)(nil)
)

// Config wires an engine. Zero lifetimes take the defaults; negative ones
// are rejected.
type Config struct {
	CypherKey string

	TokenLifetime          time.Duration
	AuthCodeLifetime       time.Duration
	ActivationCodeLifetime time.Duration

	Store CredentialStore
	// HTTP, when set, gets the routes registered under BasePath.
	HTTP     HTTPAdapter
	BasePath string

	PasswordHasher PasswordHandler
	// ClientCache, when set, fronts client lookups. Removed clients and
	// rotated secrets stay valid until their entry expires.
	ClientCache ClientCache
}

// Bantay is a ready engine. All AuthService operations are promoted.
type Bantay struct {
	*services.AuthService
	BasePath string
}

func New(config Config) (*Bantay, error) {
	if config.CypherKey == "" {
		return nil, ErrSecretRequired
	}
	if len(config.CypherKey) < core.MinSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, core.MinSecretLen)
	}
	if config.Store == nil {
		return nil, ErrStoreRequired
	}

	// Set Defaults

	lifetimes, err := resolveLifetimes(config)
	if err != nil {
		return nil, err
	}

	store := config.Store
	if config.ClientCache != nil {
		store = services.NewCachedClientStore(store, config.ClientCache)
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewBcrypt()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	cipher, err := crypto.NewAESGCM(config.CypherKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	b := &Bantay{
		AuthService: services.NewAuthService(store, passwordHasher, services.NewTokenCodec(cipher), lifetimes),
		BasePath:    basePath,
	}

	if config.HTTP != nil {
		if err := config.HTTP.RegisterRoutes(b, basePath); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// PasswordHandlerFor returns the hasher configured by name
func PasswordHandlerFor(algorithm string) (PasswordHandler, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmBcrypt:
		return crypto.NewBcrypt(), nil
	case AlgorithmArgon2:
		return crypto.NewArgon2(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

func resolveLifetimes(config Config) (services.Lifetimes, error) {
	lifetimes := services.Lifetimes{
		Token:          orDefault(config.TokenLifetime, defaultTokenLifetime),
		AuthCode:       orDefault(config.AuthCodeLifetime, defaultAuthCodeLifetime),
		ActivationCode: orDefault(config.ActivationCodeLifetime, defaultActivationCodeLifetime),
	}
	if lifetimes.Token < 0 || lifetimes.AuthCode < 0 || lifetimes.ActivationCode < 0 {
		return services.Lifetimes{}, ErrInvalidLifetime
	}
	return lifetimes, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
