package crypto

import (
	"crypto/rand"
	"errors"
	"math"
)

const (
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	SaltLength         = 30
	RefreshTokenLength = 60

	maxAlphabetSize = 255
	minAlphabetSize = 8
)

var (
	ErrAlphabetTooLong  = errors.New("alphabet must contain no more than 255 characters")
	ErrAlphabetTooShort = errors.New("alphabet must contain at least 8 characters")
	ErrAlphabetNotASCII = errors.New("alphabet must contain only ASCII characters")
	ErrInvalidLength    = errors.New("length must be positive")
)

var alphanumeric = mustGenerator(Alphanumeric)

// Generator draws uniformly distributed strings from an alphabet using
// crypto/rand. Bytes falling outside the alphabet after masking are discarded
// instead of reduced modulo, which would bias the first characters.
type Generator struct {
	alphabet string
	mask     byte
}

func NewGenerator(alphabet string) (*Generator, error) {
	if len(alphabet) > maxAlphabetSize {
		return nil, ErrAlphabetTooLong
	}
	if len(alphabet) < minAlphabetSize {
		return nil, ErrAlphabetTooShort
	}
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] > 127 {
			return nil, ErrAlphabetNotASCII
		}
	}

	// smallest 2^k-1 covering every index
	mask := 1
	for mask < len(alphabet)-1 {
		mask = mask<<1 | 1
	}

	return &Generator{alphabet: alphabet, mask: byte(mask)}, nil
}

func mustGenerator(alphabet string) *Generator {
	g, err := NewGenerator(alphabet)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Generator) String(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	alphabetLen := len(g.alphabet)
	step := int(math.Ceil(1.6 * float64(int(g.mask)*length) / float64(alphabetLen)))

	out := make([]byte, 0, length)
	buf := make([]byte, step)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if idx := int(b & g.mask); idx < alphabetLen {
				out = append(out, g.alphabet[idx])
				if len(out) == length {
					break
				}
			}
		}
	}

	return string(out), nil
}

// GenerateSalt returns the per-user salt persisted next to the password hash
func GenerateSalt() (string, error) {
	return alphanumeric.String(SaltLength)
}

// GenerateRefreshToken returns an opaque refresh token
func GenerateRefreshToken() (string, error) {
	return alphanumeric.String(RefreshTokenLength)
}
