package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/pkg/crypto"
)

// TokenCodec turns payloads into opaque artifacts and back.
//
// All three kinds share one cipher and key, so the discriminator check in
// Parse is the only thing keeping an activation code from being accepted as
// an access token.
type TokenCodec struct {
	cipher core.Cipher
	now    func() time.Time
}

func NewTokenCodec(cipher core.Cipher) *TokenCodec {
	return &TokenCodec{cipher: cipher, now: time.Now}
}

// SetNow overrides the time function (for testing).
func (c *TokenCodec) SetNow(fn func() time.Time) {
	c.now = fn
}

// Issue stamps the discriminator and expiry on p, then seals it.
func (c *TokenCodec) Issue(p core.Payload, lifetime time.Duration) (string, error) {
	header := p.Header()
	header.Discriminator = p.Kind()
	header.ExpiryTimestamp = c.now().Add(lifetime).UnixMilli()

	plaintext, err := json.Marshal(p)
	if err != nil {
		return "", core.Internal("marshal payload", err)
	}

	sealed, err := c.cipher.Encrypt(plaintext)
	if err != nil {
		return "", core.Internal("encrypt payload", err)
	}

	return crypto.EncodeB64URL(sealed), nil
}

// Parse opens artifact into dst. dst decides which kind is acceptable.
//
// Anything wrong with the artifact itself is ErrInvalidToken; a genuine
// artifact whose expiry is not strictly in the future is ErrExpiredToken.
func (c *TokenCodec) Parse(artifact string, dst core.Payload) error {
	sealed, err := crypto.DecodeB64URL(artifact)
	if err != nil {
		return core.ErrInvalidToken
	}

	plaintext, err := c.decrypt(sealed)
	if err != nil {
		return core.ErrInvalidToken
	}

	if err := json.Unmarshal(plaintext, dst); err != nil {
		return core.ErrInvalidToken
	}

	if dst.Header().Discriminator != dst.Kind() {
		return core.ErrInvalidToken
	}

	// no skew tolerance: expiry == now is already expired
	if dst.Header().ExpiryTimestamp <= c.now().UnixMilli() {
		return core.ErrExpiredToken
	}

	return nil
}

// decrypt is the fault boundary around the cipher. A panic inside the cipher
// on hostile input is reported as an error instead of unwinding the caller.
func (c *TokenCodec) decrypt(sealed []byte) (plaintext []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			plaintext = nil
			err = fmt.Errorf("cipher panic: %v", r)
		}
	}()

	return c.cipher.Decrypt(sealed)
}
