package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/pkg/crypto"
)

// Lifetimes of the three artifacts
type Lifetimes struct {
	Token          time.Duration
	AuthCode       time.Duration
	ActivationCode time.Duration
}

type AuthService struct {
	store          core.CredentialStore
	passwordHasher core.PasswordHandler
	codec          *TokenCodec
	lifetimes      Lifetimes
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

func NewAuthService(store core.CredentialStore, passwordHasher core.PasswordHandler, codec *TokenCodec, lifetimes Lifetimes) *AuthService {
	return &AuthService{
		store:          store,
		passwordHasher: passwordHasher,
		codec:          codec,
		lifetimes:      lifetimes,
	}
}

// Register creates an inactive user
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	// Step 1: Generate the per-user salt
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return core.Internal("generate salt", err)
	}

	// Step 2: Hash the password
	hash, err := s.passwordHasher.Hash(password, salt)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrCrypto, err)
	}

	// Step 3: Insert, letting the store enforce uniqueness
	err = s.store.InsertUser(ctx, &core.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		IsActivated:  false,
	})
	if err != nil {
		if errors.Is(err, core.ErrUserAlreadyExist) {
			return core.ErrUserAlreadyExist
		}
		return core.Internal("insert user", err)
	}

	return nil
}

// GetActivationCodeWithEmail issues a fresh activation code for an inactive
// user and returns it with the address it should be mailed to.
func (s *AuthService) GetActivationCodeWithEmail(ctx context.Context, username string) (string, string, error) {
	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return "", "", err
	}
	if user.IsActivated {
		return "", "", core.ErrUserAlreadyActivated
	}

	code, err := s.codec.Issue(&core.ActivationCodePayload{Username: user.Username}, s.lifetimes.ActivationCode)
	if err != nil {
		return "", "", err
	}

	return user.Email, code, nil
}

// Activate marks the user named by the code active. Activating twice is not
// an error; the store simply reports zero rows.
func (s *AuthService) Activate(ctx context.Context, code string) (int64, error) {
	var payload core.ActivationCodePayload
	if err := s.codec.Parse(code, &payload); err != nil {
		return 0, err
	}

	rows, err := s.store.SetActivated(ctx, payload.Username)
	if err != nil {
		return 0, core.Internal("set activated", err)
	}

	return rows, nil
}

// GetToken is the password grant
func (s *AuthService) GetToken(ctx context.Context, username, password string) (*core.TokenPair, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return s.issueTokenPair(user.Username)
}

// CheckRedirectURI reports whether redirectURI, without its query, is the
// callback registered for clientID.
func (s *AuthService) CheckRedirectURI(ctx context.Context, clientID, redirectURI string) (bool, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, core.ErrInvalidClientID
		}
		return false, core.Internal("get client", err)
	}

	stripped, err := stripQuery(redirectURI)
	if err != nil {
		return false, core.ErrInvalidRedirectURI
	}

	return client.RedirectURI == stripped, nil
}

// GetAuthorizationCode validates the redirect first, then the credentials,
// and seals username and client id into a short lived code.
func (s *AuthService) GetAuthorizationCode(ctx context.Context, username, password, clientID, redirectURI string) (string, error) {
	// Step 1: The client must be asking for its own callback
	ok, err := s.CheckRedirectURI(ctx, clientID, redirectURI)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", core.ErrInvalidRedirectURI
	}

	// Step 2: The user must prove the password
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	// Step 3: Seal the binding
	return s.codec.Issue(&core.AuthCodePayload{
		Username: user.Username,
		ClientID: clientID,
	}, s.lifetimes.AuthCode)
}

// ExchangeToken trades an authorization code for tokens. Codes are not
// single use: any replay before expiry succeeds.
func (s *AuthService) ExchangeToken(ctx context.Context, code, clientSecret string) (*core.TokenPair, error) {
	// Step 1: Open the code
	var payload core.AuthCodePayload
	if err := s.codec.Parse(code, &payload); err != nil {
		return nil, err
	}

	// Step 2: Resolve the bound client. A vanished client is reported as a
	// bad code so holders of a stolen code learn nothing about clients.
	client, err := s.store.GetClient(ctx, payload.ClientID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, core.Internal("get client", err)
	}

	// Step 3: The caller must know the client secret
	if subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) != 1 {
		return nil, core.ErrInvalidClientID
	}

	return s.issueTokenPair(payload.Username)
}

// Inspect validates an access token without touching the store
func (s *AuthService) Inspect(_ context.Context, accessToken string) (*core.TokenPayload, error) {
	var payload core.TokenPayload
	if err := s.codec.Parse(accessToken, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// authenticate checks existence, then password, then activation. The
// activation state is only revealed to callers who know the password.
func (s *AuthService) authenticate(ctx context.Context, username, password string) (*core.User, error) {
	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, err
	}

	valid, err := s.passwordHasher.Verify(user.PasswordHash, password, user.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCrypto, err)
	}
	if !valid {
		return nil, core.ErrWrongPassword
	}

	if !user.IsActivated {
		return nil, core.ErrNotActivated
	}

	return user, nil
}

func (s *AuthService) lookupUser(ctx context.Context, username string) (*core.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, core.Internal("get user", err)
	}
	return user, nil
}

func (s *AuthService) issueTokenPair(username string) (*core.TokenPair, error) {
	token, err := s.codec.Issue(&core.TokenPayload{Username: username}, s.lifetimes.Token)
	if err != nil {
		return nil, err
	}

	refresh, err := crypto.GenerateRefreshToken()
	if err != nil {
		return nil, core.Internal("generate refresh token", err)
	}

	return &core.TokenPair{AccessToken: token, RefreshToken: refresh}, nil
}

// stripQuery drops the query from an absolute URI. The fragment stays part
// of the comparison.
func stripQuery(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("redirect uri must be absolute: %q", raw)
	}
	u.RawQuery = ""
	u.ForceQuery = false
	return u.String(), nil
}

// ActivationURL is the link mailed to a freshly registered user
func ActivationURL(baseURL, code string) string {
	return strings.TrimSuffix(baseURL, "/") + "/activate?code=" + url.QueryEscape(code)
}
