package users

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, "a@x.com", "$2a$hash")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	missing, err := r.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, r.UpdatePasswordHash(ctx, u.ID, "$2a$other"))
	got2, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "$2a$other", got2.PasswordHash)

	list, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.DeleteByID(ctx, u.ID))
	require.ErrorIs(t, r.DeleteByID(ctx, u.ID), ErrNotFound)
	require.ErrorIs(t, r.UpdatePasswordHash(ctx, u.ID, "x"), ErrNotFound)
}

func TestMemoryRepoDuplicateEmail(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()
	_, err := r.Create(ctx, "dup@x.com", "h1")
	require.NoError(t, err)
	_, err = r.Create(ctx, "dup@x.com", "h2")
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestMemoryRepoDeleteAll(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()
	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := r.Create(ctx, e, "h")
		require.NoError(t, err)
	}
	n, err := r.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	list, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

// Concurrent registrations for one email must produce exactly one winner.
func TestMemoryRepoConcurrentCreateSingleWinner(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, "race@x.com", "h")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case err == ErrEmailInUse:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, workers-1, dup)
}
