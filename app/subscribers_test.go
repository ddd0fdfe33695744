package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/adapters/clock"
	"github.com/artpar/thermogate/adapters/idgen"
	"github.com/artpar/thermogate/adapters/memory"
	"github.com/artpar/thermogate/app"
	"github.com/artpar/thermogate/domain/subscriber"
)

func newSubscriberService() (*app.SubscriberService, *clock.Fake) {
	clk := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := app.NewSubscriberService(memory.NewSubscriberStore(), idgen.NewSequential("sub"), clk, zerolog.Nop())
	return svc, clk
}

func TestSubscriberService_Subscribe(t *testing.T) {
	svc, clk := newSubscriberService()
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, subscriber.Input{Name: "  Ada  ", Email: "ada@Example.COM"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", sub.Name)
	}
	if sub.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", sub.Email)
	}
	if sub.ID == "" {
		t.Error("ID is empty")
	}
	if !sub.CreatedAt.Equal(clk.Now()) {
		t.Errorf("CreatedAt = %v, want %v", sub.CreatedAt, clk.Now())
	}

	subs, total, err := svc.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(subs) != 1 {
		t.Errorf("total = %d, len = %d, want 1, 1", total, len(subs))
	}
}

func TestSubscriberService_Validation(t *testing.T) {
	svc, _ := newSubscriberService()

	tests := []struct {
		name  string
		input subscriber.Input
		field string
		err   error
	}{
		{"missing name", subscriber.Input{Email: "a@b.c"}, "name", subscriber.ErrNameRequired},
		{"missing email", subscriber.Input{Name: "Ada"}, "email", subscriber.ErrEmailRequired},
		{"no at sign", subscriber.Input{Name: "Ada", Email: "ada.example.com"}, "email", subscriber.ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Subscribe(context.Background(), tt.input)

			var verr *app.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestSubscriberService_Duplicate(t *testing.T) {
	svc, _ := newSubscriberService()
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, subscriber.Input{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("first Subscribe: %v", err)
	}
	_, err := svc.Subscribe(ctx, subscriber.Input{Name: "Ada L.", Email: "ada@EXAMPLE.com"})
	if !errors.Is(err, subscriber.ErrAlreadySubscribed) {
		t.Errorf("err = %v, want ErrAlreadySubscribed", err)
	}
}
