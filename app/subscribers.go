package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/ports"
)

// ValidationError reports which input field failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// SubscriberService records newsletter signups.
type SubscriberService struct {
	store  ports.SubscriberStore
	ids    ports.IDGenerator
	clock  ports.Clock
	logger zerolog.Logger
}

// NewSubscriberService creates a subscriber service.
func NewSubscriberService(store ports.SubscriberStore, ids ports.IDGenerator, clock ports.Clock, logger zerolog.Logger) *SubscriberService {
	return &SubscriberService{
		store:  store,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Subscribe validates in and stores a new subscriber.
// Invalid input yields a *ValidationError.
func (s *SubscriberService) Subscribe(ctx context.Context, in subscriber.Input) (subscriber.Subscriber, error) {
	in = in.Normalize()
	if field, err := subscriber.Validate(in); err != nil {
		return subscriber.Subscriber{}, &ValidationError{Field: field, Err: err}
	}

	sub := subscriber.Subscriber{
		ID:        s.ids.New(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return subscriber.Subscriber{}, err
	}

	s.logger.Info().
		Str("subscriber_id", sub.ID).
		Str("name", sub.Name).
		Str("email", sub.Email).
		Msg("new subscriber")
	return sub, nil
}

// List returns one page of subscribers and the total count.
func (s *SubscriberService) List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, int, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	subs, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
