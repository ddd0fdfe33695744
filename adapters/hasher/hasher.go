// Package hasher provides token digest implementations.
package hasher

import (
	"errors"
	"fmt"

	"github.com/artpar/thermogate/ports"
	"golang.org/x/crypto/blake2b"
)

// SecretSize is the length of the generated MAC secret.
const SecretSize = 32

// ErrSecretSize is returned for secrets blake2b cannot key with.
var ErrSecretSize = errors.New("hasher: secret must be 1 to 64 bytes")

// Blake2b computes a keyed BLAKE2b-256 digest of each token, so the key
// store never holds raw token values and every lookup is on 32 bytes.
type Blake2b struct {
	secret []byte
}

// NewBlake2b creates a hasher keyed with secret.
func NewBlake2b(secret []byte) (*Blake2b, error) {
	if len(secret) == 0 || len(secret) > blake2b.Size {
		return nil, ErrSecretSize
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Blake2b{secret: s}, nil
}

// NewRandomBlake2b creates a hasher keyed with a fresh per-process secret.
func NewRandomBlake2b(r ports.Random) (*Blake2b, error) {
	secret, err := r.Bytes(SecretSize)
	if err != nil {
		return nil, fmt.Errorf("generate hasher secret: %w", err)
	}
	return NewBlake2b(secret)
}

// Digest returns the 32-byte MAC of token as a string.
func (h *Blake2b) Digest(token string) string {
	mac, err := blake2b.New256(h.secret)
	if err != nil {
		// Key length is checked in NewBlake2b.
		panic(fmt.Sprintf("blake2b: %v", err))
	}
	mac.Write([]byte(token))
	return string(mac.Sum(nil))
}

// Fake returns the token unchanged (NOT FOR PRODUCTION).
type Fake struct{}

// Digest returns token.
func (Fake) Digest(token string) string {
	return token
}

var (
	_ ports.Hasher = (*Blake2b)(nil)
	_ ports.Hasher = Fake{}
)
