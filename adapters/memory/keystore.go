// Package memory provides in-memory implementations of storage ports.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/ports"
)

// KeyStore is an in-memory implementation of ports.KeyStore.
// It holds digests only; raw tokens leave the store once, from Issue.
type KeyStore struct {
	mu     sync.RWMutex
	keys   map[string]struct{} // by digest
	hasher ports.Hasher
	random ports.Random
	format key.Format
}

// NewKeyStore creates a new in-memory key store.
func NewKeyStore(hasher ports.Hasher, random ports.Random, format key.Format) *KeyStore {
	return &KeyStore{
		keys:   make(map[string]struct{}),
		hasher: hasher,
		random: random,
		format: format,
	}
}

// Issue generates a new token and adds it to the set.
// Generation and hashing happen outside the lock.
func (s *KeyStore) Issue(ctx context.Context) (string, error) {
	for attempt := 0; attempt < key.MaxIssueAttempts; attempt++ {
		body, err := s.random.String(s.format.Length)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		token := s.format.Compose(body)
		digest := s.hasher.Digest(token)

		s.mu.Lock()
		_, exists := s.keys[digest]
		if !exists {
			s.keys[digest] = struct{}{}
		}
		s.mu.Unlock()

		if !exists {
			return token, nil
		}
	}
	return "", key.ErrIssueExhausted
}

// Validate reports whether token is a live key.
func (s *KeyStore) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	digest := s.hasher.Digest(token)

	s.mu.RLock()
	_, ok := s.keys[digest]
	s.mu.RUnlock()

	return ok, nil
}

// Revoke removes token from the set.
func (s *KeyStore) Revoke(ctx context.Context, token string) error {
	digest := s.hasher.Digest(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[digest]; !ok {
		return key.ErrNotFound
	}
	delete(s.keys, digest)
	return nil
}

// Len returns the number of live keys.
func (s *KeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Ensure interface compliance.
var _ ports.KeyStore = (*KeyStore)(nil)
