package cli

import (
	"testing"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/app"
	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/testutil"
)

// SetupCLITest creates a repository on an in-process Redis and returns both
// the repository and an App on it.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	// Distinct timestamps keep newest-first listings deterministic
	repo.SetClock(testutil.StepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second))

	// Note: EventPublisher is nil - event publishing is tested elsewhere
	appInstance := app.New(repo, app.WithMirror(testutil.SetupTestMirror(t)))
	t.Cleanup(func() { _ = appInstance.Close() })

	return repo, appInstance
}

// CreateTestBoard creates a seeded board through the app and returns it
func CreateTestBoard(t *testing.T, a *app.App, name string) string {
	t.Helper()
	board, err := a.State.CreateBoard(t.Context(), name, "")
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return board.ID
}

// CreateTestList wraps testutil.CreateTestList for CLI tests
func CreateTestList(t *testing.T, repo *database.Repository, boardID, title string) string {
	t.Helper()
	return testutil.CreateTestList(t, repo, boardID, title)
}

// CreateTestItem wraps testutil.CreateTestItem for CLI tests
func CreateTestItem(t *testing.T, repo *database.Repository, boardID, listID, title string) string {
	t.Helper()
	return testutil.CreateTestItem(t, repo, boardID, listID, title)
}
