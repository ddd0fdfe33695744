// Package key provides API key value types and pure functions.
// This package has NO dependencies on I/O.
package key

import (
	"errors"
	"strings"
)

// Token format defaults.
const (
	DefaultPrefix = "tg_"
	DefaultLength = 32 // hex chars after the prefix

	// MaxIssueAttempts bounds the collision retry loop during issuance.
	MaxIssueAttempts = 5
)

// Errors returned by key stores.
var (
	ErrNotFound       = errors.New("key: not found")
	ErrIssueExhausted = errors.New("key: no unique token after retries")

	// ErrRevocationScope is returned when a caller targets a key other than
	// its own and foreign revocation is disabled.
	ErrRevocationScope = errors.New("key: revocation outside caller scope")
)

// Revocation results, used as metric labels.
const (
	RevokeOK       = "revoked"
	RevokeNotFound = "not_found"
	RevokeDenied   = "denied"
)

// Reasons for authentication failure, used as metric labels.
const (
	ReasonMissing   = "missing_api_key"
	ReasonMalformed = "malformed_api_key"
	ReasonInvalid   = "invalid_api_key" // revoked and never-issued are not distinguished
	ReasonError     = "store_error"
)

// Format describes the shape of issued tokens (value type).
type Format struct {
	Prefix string
	Length int
}

// DefaultFormat returns the format used when nothing is configured.
func DefaultFormat() Format {
	return Format{Prefix: DefaultPrefix, Length: DefaultLength}
}

// Compose builds a token from a random hex body.
func (f Format) Compose(body string) string {
	return f.Prefix + body
}

// Valid reports whether raw has the shape of a token issued under f.
// This is a PURE function.
func (f Format) Valid(raw string) bool {
	if !strings.HasPrefix(raw, f.Prefix) {
		return false
	}
	body := raw[len(f.Prefix):]
	if len(body) != f.Length {
		return false
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Redact returns a form of the token that is safe to log.
func (f Format) Redact(raw string) string {
	visible := len(f.Prefix) + 4
	if len(raw) <= visible {
		return "****"
	}
	return raw[:visible] + "****"
}
