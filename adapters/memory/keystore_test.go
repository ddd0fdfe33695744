package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/artpar/thermogate/adapters/hasher"
	"github.com/artpar/thermogate/adapters/memory"
	"github.com/artpar/thermogate/adapters/random"
	"github.com/artpar/thermogate/domain/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRealKeyStore(t *testing.T) *memory.KeyStore {
	t.Helper()
	h, err := hasher.NewRandomBlake2b(random.Real{})
	require.NoError(t, err)
	return memory.NewKeyStore(h, random.Real{}, key.DefaultFormat())
}

func TestKeyStore_NewKeyStore(t *testing.T) {
	store := newRealKeyStore(t)
	if store.Len() != 0 {
		t.Errorf("new store should be empty, got %d keys", store.Len())
	}
}

func TestKeyStore_IssueThenValidate(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !key.DefaultFormat().Valid(token) {
		t.Errorf("issued token %q does not match the default format", token)
	}

	ok, err := store.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Error("expected issued token to be valid")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestKeyStore_ValidateNeverIssued(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	store.Issue(ctx)

	for _, token := range []string{"", "1234", "tg_00000000000000000000000000000000"} {
		ok, err := store.Validate(ctx, token)
		if err != nil {
			t.Fatalf("Validate(%q) failed: %v", token, err)
		}
		if ok {
			t.Errorf("Validate(%q) = true, want false", token)
		}
	}
}

func TestKeyStore_RevokeThenValidate(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	token, _ := store.Issue(ctx)
	other, _ := store.Issue(ctx)

	if err := store.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	ok, _ := store.Validate(ctx, token)
	if ok {
		t.Error("revoked token should not validate")
	}
	ok, _ = store.Validate(ctx, other)
	if !ok {
		t.Error("revoking one token must not affect another")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestKeyStore_RevokeUnknown(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	if err := store.Revoke(ctx, "tg_nope"); !errors.Is(err, key.ErrNotFound) {
		t.Errorf("Revoke unknown err = %v, want ErrNotFound", err)
	}

	token, _ := store.Issue(ctx)
	store.Revoke(ctx, token)
	if err := store.Revoke(ctx, token); !errors.Is(err, key.ErrNotFound) {
		t.Errorf("second Revoke err = %v, want ErrNotFound", err)
	}
}

func TestKeyStore_IssueRetriesOnCollision(t *testing.T) {
	rnd := random.NewFake().WithStrings("aaaa", "aaaa", "bbbb")
	store := memory.NewKeyStore(hasher.Fake{}, rnd, key.Format{Length: 4})
	ctx := context.Background()

	first, err := store.Issue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "aaaa", first)

	second, err := store.Issue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bbbb", second)
	assert.Equal(t, 2, store.Len())
}

func TestKeyStore_IssueExhausted(t *testing.T) {
	rnd := random.NewFake().WithStrings("aaaa", "aaaa", "aaaa", "aaaa", "aaaa", "aaaa")
	store := memory.NewKeyStore(hasher.Fake{}, rnd, key.Format{Length: 4})
	ctx := context.Background()

	_, err := store.Issue(ctx)
	require.NoError(t, err)

	_, err = store.Issue(ctx)
	assert.ErrorIs(t, err, key.ErrIssueExhausted)
	assert.Equal(t, 1, store.Len(), "failed issuance must not change the set")
}

func TestKeyStore_IssueRandomFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	store := memory.NewKeyStore(hasher.Fake{}, random.NewFake().FailWith(boom), key.DefaultFormat())

	_, err := store.Issue(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestKeyStore_ConcurrentIssue(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()
	const n = 200

	tokens := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = store.Issue(ctx)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, token := range tokens {
		require.NoError(t, errs[i])
		assert.False(t, seen[token], "duplicate token issued: %s", token)
		seen[token] = true

		ok, err := store.Validate(ctx, token)
		require.NoError(t, err)
		assert.True(t, ok, "token %s should be valid", token)
	}
	assert.Equal(t, n, store.Len())
}

func TestKeyStore_ConcurrentIssueWithCollisions(t *testing.T) {
	// A small body forces frequent collisions under concurrency; every
	// successful Issue must still return a distinct live token.
	rnd := random.Real{}
	store := memory.NewKeyStore(hasher.Fake{}, rnd, key.Format{Length: 3})
	ctx := context.Background()
	const n = 64

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := store.Issue(ctx)
			if err != nil {
				assert.ErrorIs(t, err, key.ErrIssueExhausted)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[token], "duplicate token issued: %s", token)
			seen[token] = true
		}()
	}
	wg.Wait()

	assert.Equal(t, len(seen), store.Len())
}

func TestKeyStore_ConcurrentDoubleRevoke(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	for round := 0; round < 100; round++ {
		token, err := store.Issue(ctx)
		require.NoError(t, err)

		start := make(chan struct{})
		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				<-start
				results <- store.Revoke(ctx, token)
			}()
		}
		close(start)

		var succeeded, notFound int
		for i := 0; i < 2; i++ {
			switch err := <-results; {
			case err == nil:
				succeeded++
			case errors.Is(err, key.ErrNotFound):
				notFound++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, succeeded, "round %d: exactly one revoke must succeed", round)
		require.Equal(t, 1, notFound, "round %d: the other revoke must report not found", round)

		ok, _ := store.Validate(ctx, token)
		require.False(t, ok)
	}
}

func TestKeyStore_ConcurrentValidateDuringRevoke(t *testing.T) {
	store := newRealKeyStore(t)
	ctx := context.Background()

	keep, _ := store.Issue(ctx)
	drop, _ := store.Issue(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Validate(ctx, keep)
			assert.NoError(t, err)
			assert.True(t, ok)
			store.Validate(ctx, drop)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, store.Revoke(ctx, drop))
	}()
	wg.Wait()

	ok, _ := store.Validate(ctx, drop)
	assert.False(t, ok)
}
