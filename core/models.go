package core

// User represents a registered account
//
// Users are created inactive and flipped to active by the activation step.
type User struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Salt         string `json:"-"` // Stored next to the hash, not a secret on its own
	IsActivated  bool   `json:"isActivated"`
}

// ClientCredential represents a third-party application allowed to request
// authorization codes.
//
// Provisioned out of band, this package never creates one.
type ClientCredential struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"-"`
	RedirectURI  string `json:"redirectUri"` // Registered callback without query string
}

// RefreshToken is returned alongside every access token.
// No operation consumes it yet.
type RefreshToken = string

// TokenPair is the result of a successful login or code exchange
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken RefreshToken `json:"refresh_token"`
}
