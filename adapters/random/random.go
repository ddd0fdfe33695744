// Package random provides Random implementations.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/artpar/thermogate/ports"
)

// Real uses crypto/rand for secure randomness.
type Real struct{}

// Bytes generates n cryptographically secure random bytes.
func (Real) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// String generates a random hex string of n characters.
func (r Real) String(n int) (string, error) {
	b, err := r.Bytes((n + 1) / 2)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b)[:n], nil
}

// Fake provides deterministic randomness for testing.
// Preset strings are returned first, in order; after that output is
// derived from a counter so every call differs.
type Fake struct {
	mu      sync.Mutex
	counter int
	strings []string
	err     error
}

// NewFake creates a fake random source.
func NewFake() *Fake {
	return &Fake{}
}

// WithStrings sets preset values returned by String.
func (f *Fake) WithStrings(values ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings = append(f.strings, values...)
	return f
}

// FailWith makes every subsequent call return err.
func (f *Fake) FailWith(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// Bytes returns deterministic bytes based on the call counter.
func (f *Fake) Bytes(n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.nextLocked(n), nil
}

// String returns the next preset value or a deterministic hex string.
func (f *Fake) String(n int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if len(f.strings) > 0 {
		s := f.strings[0]
		f.strings = f.strings[1:]
		return s, nil
	}
	return hex.EncodeToString(f.nextLocked((n + 1) / 2))[:n], nil
}

func (f *Fake) nextLocked(n int) []byte {
	f.counter++
	b := make([]byte, n)
	c := f.counter
	for i := n - 1; i >= 0 && c > 0; i-- {
		b[i] = byte(c)
		c >>= 8
	}
	return b
}

var (
	_ ports.Random = Real{}
	_ ports.Random = (*Fake)(nil)
)
