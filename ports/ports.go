// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/domain/usage"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// Random abstracts randomness for testability.
type Random interface {
	// Bytes generates n random bytes.
	Bytes(n int) ([]byte, error)
	// String generates a random hex string of n characters.
	String(n int) (string, error)
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher derives the fixed-width digest a token is stored under.
type Hasher interface {
	Digest(token string) string
}

// -----------------------------------------------------------------------------
// Key and Usage Ports
// -----------------------------------------------------------------------------

// KeyStore owns the set of currently valid API keys.
type KeyStore interface {
	// Issue generates a new token and adds it to the set.
	Issue(ctx context.Context) (string, error)

	// Validate reports whether token is currently in the set.
	Validate(ctx context.Context, token string) (bool, error)

	// Revoke removes token from the set. Returns key.ErrNotFound if absent.
	Revoke(ctx context.Context, token string) error

	// Len returns the number of live keys.
	Len() int
}

// UsageCounters owns per-operation invocation counts.
type UsageCounters interface {
	// Increment adds one to the named counter, creating it if unseen.
	Increment(op usage.Operation)

	// Snapshot returns a point-in-time copy of every counter.
	Snapshot() usage.Snapshot
}

// UsageRecorder applies counter increments off the request path.
type UsageRecorder interface {
	// Record queues an increment for op. Never blocks on the counters.
	Record(op usage.Operation)

	// Flush waits until every increment recorded before the call is applied.
	Flush(ctx context.Context) error

	// Close drains pending increments and stops the worker.
	Close() error
}

// -----------------------------------------------------------------------------
// Subscriber Port
// -----------------------------------------------------------------------------

// SubscriberStore persists newsletter subscribers.
type SubscriberStore interface {
	// Create stores a new subscriber.
	Create(ctx context.Context, s subscriber.Subscriber) error

	// List returns subscribers, newest first.
	List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, error)

	// Count returns the total number of subscribers.
	Count(ctx context.Context) (int, error)

	// HealthCheck reports whether the backing storage is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
