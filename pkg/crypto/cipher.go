package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// AESGCM seals payloads with AES-256-GCM. The 256 bit key is the SHA-256 of
// the configured cypher key, so any non-empty string can be used as secret.
type AESGCM struct {
	aead cipher.AEAD
}

func NewAESGCM(cypherKey string) (*AESGCM, error) {
	if cypherKey == "" {
		return nil, errors.New("cypher key cannot be empty")
	}
	key := sha256.Sum256([]byte(cypherKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &AESGCM{aead: aead}, nil
}

// Encrypt returns nonce || ciphertext+tag
func (c *AESGCM) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *AESGCM) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < c.aead.NonceSize()+c.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	nonce, sealed := ciphertext[:c.aead.NonceSize()], ciphertext[c.aead.NonceSize():]
	return c.aead.Open(nil, nonce, sealed, nil)
}

// EncodeB64URL is URL-safe base64 with padding
func EncodeB64URL(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

func DecodeB64URL(s string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(s)
}
