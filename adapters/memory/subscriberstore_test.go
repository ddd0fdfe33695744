package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/artpar/thermogate/adapters/memory"
	"github.com/artpar/thermogate/domain/subscriber"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestSubscriberStore_CreateAndList(t *testing.T) {
	store := memory.NewSubscriberStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Create(ctx, subscriber.Subscriber{
			ID:        fmt.Sprintf("sub-%d", i),
			Name:      "User",
			Email:     fmt.Sprintf("user%d@example.com", i),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, err := store.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 subscribers, got %d", len(list))
	}
	if list[0].ID != "sub-2" {
		t.Errorf("expected newest first, got %s", list[0].ID)
	}

	count, _ := store.Count(ctx)
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestSubscriberStore_ListPagination(t *testing.T) {
	store := memory.NewSubscriberStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Create(ctx, subscriber.Subscriber{ID: fmt.Sprintf("sub-%d", i), Email: fmt.Sprintf("u%d@x.io", i)})
	}

	page, _ := store.List(ctx, 2, 2)
	if len(page) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page))
	}
	if page[0].ID != "sub-2" || page[1].ID != "sub-1" {
		t.Errorf("unexpected page: %s, %s", page[0].ID, page[1].ID)
	}

	beyond, _ := store.List(ctx, 2, 10)
	if len(beyond) != 0 {
		t.Errorf("expected empty page beyond the end, got %d", len(beyond))
	}
}

func TestSubscriberStore_DuplicateEmail(t *testing.T) {
	store := memory.NewSubscriberStore()
	ctx := context.Background()

	store.Create(ctx, subscriber.Subscriber{ID: "a", Email: "ada@example.com"})
	err := store.Create(ctx, subscriber.Subscriber{ID: "b", Email: "ADA@example.com"})
	if !errors.Is(err, subscriber.ErrAlreadySubscribed) {
		t.Errorf("err = %v, want ErrAlreadySubscribed", err)
	}
}
