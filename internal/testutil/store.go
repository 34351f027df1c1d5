package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/mirror"
	"github.com/madhankd/madhanboard-v2/internal/ordering"
)

// TestKeyPrefix namespaces every key written by test stores
const TestKeyPrefix = "test"

// SetupTestStore starts an in-process Redis and returns a document store on it.
// Both are closed when the test ends.
func SetupTestStore(t *testing.T) (*docstore.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := docstore.NewRedisStore(&redis.Options{Addr: mr.Addr()}, TestKeyPrefix)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

// SetupTestRepo returns a repository on a fresh in-process Redis
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	store, _ := SetupTestStore(t)
	return database.NewRepository(store)
}

// StepClock returns a time source starting at start that advances by step on every call
func StepClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

// SetupTestMirror opens a cache mirror in a temporary directory
func SetupTestMirror(t *testing.T) *mirror.Mirror {
	t.Helper()
	m, err := mirror.Open(context.Background(), filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("Failed to open mirror: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// CreateTestBoard creates a bare board document (no default lists) and returns its ID
func CreateTestBoard(t *testing.T, repo *database.Repository, name string) string {
	t.Helper()
	board, err := repo.CreateBoard(context.Background(), name, "")
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return board.ID
}

// CreateTestList appends a list to a board and returns its ID
func CreateTestList(t *testing.T, repo *database.Repository, boardID, title string) string {
	t.Helper()
	ctx := context.Background()
	lists, err := repo.ListLists(ctx, boardID)
	if err != nil {
		t.Fatalf("Failed to read lists: %v", err)
	}
	list, err := repo.CreateList(ctx, boardID, title, ordering.NextList(lists))
	if err != nil {
		t.Fatalf("Failed to create test list: %v", err)
	}
	return list.ID
}

// CreateTestItem adds an unordered item to a list and returns its ID
func CreateTestItem(t *testing.T, repo *database.Repository, boardID, listID, title string) string {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), boardID, listID, title, "", nil)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item.ID
}
