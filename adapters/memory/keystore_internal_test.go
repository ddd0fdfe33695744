package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/artpar/thermogate/adapters/hasher"
	"github.com/artpar/thermogate/adapters/random"
	"github.com/artpar/thermogate/domain/key"
)

func TestKeyStore_HoldsDigestsOnly(t *testing.T) {
	h, err := hasher.NewBlake2b([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewBlake2b: %v", err)
	}
	store := NewKeyStore(h, random.Real{}, key.DefaultFormat())

	token, err := store.Issue(context.Background())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for digest := range store.keys {
		if strings.Contains(digest, token) {
			t.Error("store must not hold the raw token")
		}
		if len(digest) != 32 {
			t.Errorf("digest length = %d, want 32", len(digest))
		}
	}
}
