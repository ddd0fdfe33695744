package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/ports"
)

// KeyPolicy holds the revocation settings.
type KeyPolicy struct {
	// MaskRevokeNotFound reports revocation of an unknown key as success.
	MaskRevokeNotFound bool
	// AllowForeignRevoke lets a caller revoke keys other than its own.
	AllowForeignRevoke bool
}

// KeyObserver receives key lifecycle events. metrics.Collector implements it.
type KeyObserver interface {
	KeyIssued()
	KeyRevoked(result string)
	AuthFailed(reason string)
}

type nopObserver struct{}

func (nopObserver) KeyIssued()        {}
func (nopObserver) KeyRevoked(string) {}
func (nopObserver) AuthFailed(string) {}

// KeyService wraps the key store with policy, logging and observation.
type KeyService struct {
	store    ports.KeyStore
	format   key.Format
	observer KeyObserver
	logger   zerolog.Logger

	mu     sync.RWMutex
	policy KeyPolicy
}

// NewKeyService creates a key service. observer may be nil.
func NewKeyService(store ports.KeyStore, format key.Format, policy KeyPolicy, observer KeyObserver, logger zerolog.Logger) *KeyService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &KeyService{
		store:    store,
		format:   format,
		observer: observer,
		logger:   logger,
		policy:   policy,
	}
}

// Policy returns the current revocation policy.
func (s *KeyService) Policy() KeyPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// SetPolicy replaces the revocation policy. Used on config reload.
func (s *KeyService) SetPolicy(p KeyPolicy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
}

// Issue creates a new API key.
func (s *KeyService) Issue(ctx context.Context) (string, error) {
	token, err := s.store.Issue(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("issue api key failed")
		return "", err
	}

	s.observer.KeyIssued()
	s.logger.Info().Str("key", s.format.Redact(token)).Msg("api key issued")
	return token, nil
}

// Authenticate checks a presented token. It returns an empty reason when the
// token is valid, otherwise one of the key.Reason* values. A non-nil error
// means the store could not answer.
func (s *KeyService) Authenticate(ctx context.Context, token string) (string, error) {
	var reason string
	var err error

	switch {
	case token == "":
		reason = key.ReasonMissing
	case !s.format.Valid(token):
		reason = key.ReasonMalformed
	default:
		var ok bool
		ok, err = s.store.Validate(ctx, token)
		switch {
		case err != nil:
			reason = key.ReasonError
		case !ok:
			reason = key.ReasonInvalid
		}
	}

	if reason == "" {
		return "", nil
	}

	s.observer.AuthFailed(reason)
	if err != nil {
		return reason, err
	}
	s.logger.Warn().Str("reason", reason).Msg("api key rejected")
	return reason, nil
}

// Reject records a credential that failed before a token could be read,
// such as a missing or undecodable Authorization header.
func (s *KeyService) Reject(reason string) {
	s.observer.AuthFailed(reason)
	s.logger.Warn().Str("reason", reason).Msg("api key rejected")
}

// Revoke removes token. It returns key.ErrNotFound for an unknown token
// unless the policy masks it.
func (s *KeyService) Revoke(ctx context.Context, token string) error {
	err := s.store.Revoke(ctx, token)
	switch {
	case err == nil:
		s.observer.KeyRevoked(key.RevokeOK)
		s.logger.Info().Str("key", s.format.Redact(token)).Msg("api key revoked")
		return nil
	case errors.Is(err, key.ErrNotFound):
		s.observer.KeyRevoked(key.RevokeNotFound)
		s.logger.Debug().Str("key", s.format.Redact(token)).Msg("revoke of unknown api key")
		if s.Policy().MaskRevokeNotFound {
			return nil
		}
		return err
	default:
		s.logger.Error().Err(err).Msg("revoke api key failed")
		return err
	}
}

// RevokeOther lets caller revoke target. It fails with key.ErrRevocationScope
// unless the policy allows foreign revocation.
func (s *KeyService) RevokeOther(ctx context.Context, caller, target string) error {
	if caller != target && !s.Policy().AllowForeignRevoke {
		s.observer.KeyRevoked(key.RevokeDenied)
		s.logger.Warn().Str("caller", s.format.Redact(caller)).Msg("foreign revocation denied")
		return key.ErrRevocationScope
	}
	return s.Revoke(ctx, target)
}

// ActiveKeys returns the number of live keys.
func (s *KeyService) ActiveKeys() int {
	return s.store.Len()
}
