package database

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
)

// ============================================================================
// STORE SETUP HELPERS
// ============================================================================

// fakeClock returns a time source that advances one second per call
func fakeClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

// setupTestRepo creates a repository on an in-process Redis with a
// deterministic clock starting at 2024-01-01 00:00:00 UTC
func setupTestRepo(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := docstore.NewRedisStore(&redis.Options{Addr: mr.Addr()}, "test")
	t.Cleanup(func() { _ = store.Close() })

	repo := NewRepository(store)
	repo.SetClock(fakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	return repo, mr
}
