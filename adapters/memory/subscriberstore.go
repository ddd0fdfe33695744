package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/ports"
)

// SubscriberStore is an in-memory implementation of ports.SubscriberStore.
type SubscriberStore struct {
	mu      sync.RWMutex
	items   []subscriber.Subscriber // insertion order
	byEmail map[string]struct{}
}

// NewSubscriberStore creates a new in-memory subscriber store.
func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{
		byEmail: make(map[string]struct{}),
	}
}

// Create stores a new subscriber.
func (s *SubscriberStore) Create(ctx context.Context, sub subscriber.Subscriber) error {
	email := strings.ToLower(sub.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return subscriber.ErrAlreadySubscribed
	}
	s.byEmail[email] = struct{}{}
	s.items = append(s.items, sub)
	return nil
}

// List returns subscribers, newest first.
func (s *SubscriberStore) List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []subscriber.Subscriber
	for i := len(s.items) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.items[i])
	}
	return result, nil
}

// Count returns the number of subscribers.
func (s *SubscriberStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// HealthCheck always succeeds.
func (s *SubscriberStore) HealthCheck(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *SubscriberStore) Close() error {
	return nil
}

// Ensure interface compliance.
var _ ports.SubscriberStore = (*SubscriberStore)(nil)
