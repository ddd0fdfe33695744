// Package postgres provides a PostgreSQL-backed subscriber store.
//
// Subscribers survive restarts and can be shared by several instances. API keys
// and usage counters always stay in process memory.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/ports"
)

// SubscriberStore implements ports.SubscriberStore on a pgx pool.
type SubscriberStore struct {
	pool        *pgxpool.Pool
	tablePrefix string
}

var _ ports.SubscriberStore = (*SubscriberStore)(nil)

// Option configures SubscriberStore.
type Option func(*SubscriberStore)

// WithTablePrefix sets the table name prefix (default "thermogate_").
func WithTablePrefix(prefix string) Option {
	return func(s *SubscriberStore) { s.tablePrefix = prefix }
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// NewSubscriberStore creates a store on pool. The store owns the pool.
func NewSubscriberStore(pool *pgxpool.Pool, opts ...Option) *SubscriberStore {
	s := &SubscriberStore{
		pool:        pool,
		tablePrefix: "thermogate_",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SubscriberStore) table() string { return s.tablePrefix + "subscribers" }

// EnsureSchema creates the subscribers table if it doesn't exist.
func (s *SubscriberStore) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_email_idx ON %[1]s (lower(email));
		CREATE INDEX IF NOT EXISTS %[1]s_created_idx ON %[1]s (created_at);
	`, s.table())
	if _, err := s.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

// Create stores a new subscriber. A second subscriber with the same email
// (case-insensitive) yields subscriber.ErrAlreadySubscribed.
func (s *SubscriberStore) Create(ctx context.Context, sub subscriber.Subscriber) error {
	var inserted bool
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, name, email, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING RETURNING true`, s.table()),
		sub.ID, sub.Name, sub.Email, sub.CreatedAt,
	).Scan(&inserted)
	if errors.Is(err, pgx.ErrNoRows) {
		return subscriber.ErrAlreadySubscribed
	}
	if err != nil {
		return fmt.Errorf("postgres: insert subscriber: %w", err)
	}
	return nil
}

// List returns subscribers, newest first.
func (s *SubscriberStore) List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT id, name, email, created_at FROM %s
			ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, s.table()),
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list subscribers: %w", err)
	}
	defer rows.Close()

	var result []subscriber.Subscriber
	for rows.Next() {
		var sub subscriber.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan subscriber: %w", err)
		}
		sub.CreatedAt = sub.CreatedAt.UTC()
		result = append(result, sub)
	}
	return result, rows.Err()
}

// Count returns the number of subscribers.
func (s *SubscriberStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table())).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count subscribers: %w", err)
	}
	return n, nil
}

// HealthCheck pings the database.
func (s *SubscriberStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *SubscriberStore) Close() error {
	s.pool.Close()
	return nil
}
