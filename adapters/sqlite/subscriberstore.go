package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/ports"
	"github.com/mattn/go-sqlite3"
)

// SubscriberStore implements ports.SubscriberStore using SQLite.
type SubscriberStore struct {
	db *DB
}

// NewSubscriberStore creates a SQLite subscriber store.
// The store owns db and closes it in Close.
func NewSubscriberStore(db *DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Create stores a new subscriber.
func (s *SubscriberStore) Create(ctx context.Context, sub subscriber.Subscriber) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
	`, sub.ID, sub.Name, sub.Email, sub.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return subscriber.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// List returns subscribers, newest first.
func (s *SubscriberStore) List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, created_at
		FROM subscribers
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var result []subscriber.Subscriber
	for rows.Next() {
		var sub subscriber.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

// Count returns the number of subscribers.
func (s *SubscriberStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}

// HealthCheck pings the database.
func (s *SubscriberStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SubscriberStore) Close() error {
	return s.db.Close()
}

// Ensure interface compliance.
var _ ports.SubscriberStore = (*SubscriberStore)(nil)
