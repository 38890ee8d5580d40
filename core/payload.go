package core

// Kind tags an encrypted artifact with what it may be used for.
type Kind string

const (
	KindAccessToken    Kind = "access_token"
	KindAuthCode       Kind = "authorization_code"
	KindActivationCode Kind = "activation_code"
)

// Envelope carries the fields every sealed payload shares. It is embedded so
// the JSON form stays flat.
type Envelope struct {
	Discriminator   Kind  `json:"discriminator"`
	ExpiryTimestamp int64 `json:"expiry_timestamp"` // unix milliseconds
}

// Payload is implemented by the three artifact bodies.
type Payload interface {
	// Kind is the discriminator this payload must carry.
	Kind() Kind
	Header() *Envelope
}

var (
	_ Payload = (*TokenPayload)(nil)
	_ Payload = (*AuthCodePayload)(nil)
	_ Payload = (*ActivationCodePayload)(nil)
)

// TokenPayload is the body of an access token
type TokenPayload struct {
	Envelope
	Username string `json:"username"`
}

func (p *TokenPayload) Kind() Kind        { return KindAccessToken }
func (p *TokenPayload) Header() *Envelope { return &p.Envelope }

// AuthCodePayload binds a user to the client that requested the code
type AuthCodePayload struct {
	Envelope
	Username string `json:"username"`
	ClientID string `json:"client_id"`
}

func (p *AuthCodePayload) Kind() Kind        { return KindAuthCode }
func (p *AuthCodePayload) Header() *Envelope { return &p.Envelope }

// ActivationCodePayload proves control of the email a user registered with
type ActivationCodePayload struct {
	Envelope
	Username string `json:"username"`
}

func (p *ActivationCodePayload) Kind() Kind        { return KindActivationCode }
func (p *ActivationCodePayload) Header() *Envelope { return &p.Envelope }
