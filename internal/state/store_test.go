package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/mirror"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/services/board"
	"github.com/madhankd/madhanboard-v2/internal/services/item"
	"github.com/madhankd/madhanboard-v2/internal/services/list"
	"github.com/madhankd/madhanboard-v2/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fixture struct {
	store  *Store
	repo   *database.Repository
	mirror *mirror.Mirror
}

func setupStore(t *testing.T) fixture {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	repo.SetClock(testutil.StepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second))
	m := testutil.SetupTestMirror(t)

	store := New(
		board.NewService(repo, nil),
		list.NewService(repo, nil),
		item.NewService(repo, nil),
		m,
	)
	return fixture{store: store, repo: repo, mirror: m}
}

// failingBoards fails every board read
type failingBoards struct {
	board.Service
	err error
}

func (f failingBoards) ListBoards(context.Context) ([]*models.BoardSummary, error) {
	return nil, f.err
}

func listTitles(b *models.Board) []string {
	titles := make([]string, len(b.BoardList))
	for i, l := range b.BoardList {
		titles[i] = l.Title
	}
	return titles
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestNew_StartsLoading(t *testing.T) {
	t.Parallel()
	f := setupStore(t)

	snap := f.store.Snapshot()
	assert.True(t, snap.Boards.Loading)
	assert.True(t, snap.Current.Loading)
	assert.Empty(t, snap.Boards.Data)
	assert.Nil(t, snap.Current.Data)
}

func TestLoadBoards(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	_, err := f.store.CreateBoard(ctx, "First", "")
	require.NoError(t, err)
	_, err = f.store.CreateBoard(ctx, "Second", "")
	require.NoError(t, err)

	require.NoError(t, f.store.LoadBoards(ctx))
	snap := f.store.Snapshot()
	assert.False(t, snap.Boards.Loading)
	require.Len(t, snap.Boards.Data, 2)
	assert.Equal(t, "Second", snap.Boards.Data[0].Name)
	assert.Equal(t, "First", snap.Boards.Data[1].Name)
}

func TestLoadBoards_FailureKeepsPreviousData(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	_, err := f.store.CreateBoard(ctx, "Kept", "")
	require.NoError(t, err)

	boom := errors.New("network down")
	f.store.boardService = failingBoards{Service: f.store.boardService, err: boom}

	err = f.store.LoadBoards(ctx)
	require.ErrorIs(t, err, boom)

	snap := f.store.Snapshot()
	assert.False(t, snap.Boards.Loading)
	assert.ErrorIs(t, snap.Boards.Err, boom)
	require.Len(t, snap.Boards.Data, 1)
	assert.Equal(t, "Kept", snap.Boards.Data[0].Name)
}

func TestCreateBoard_PrependsSummary(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	first, err := f.store.CreateBoard(ctx, "First", "")
	require.NoError(t, err)
	second, err := f.store.CreateBoard(ctx, "Second", "desc")
	require.NoError(t, err)

	data := f.store.Snapshot().Boards.Data
	require.Len(t, data, 2)
	assert.Equal(t, second.ID, data[0].ID)
	assert.Equal(t, "desc", data[0].Description)
	assert.Equal(t, first.ID, data[1].ID)
}

func TestCreateBoard_InvalidName(t *testing.T) {
	t.Parallel()
	f := setupStore(t)

	_, err := f.store.CreateBoard(context.Background(), "  ", "")
	assert.ErrorIs(t, err, board.ErrEmptyName)
	assert.Empty(t, f.store.Snapshot().Boards.Data)
}

func TestFetchBoard_SetsCurrentAndMirrors(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Sprint 1", "desc")
	require.NoError(t, err)

	loaded, err := f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"To-Do", "Done", "Pending"}, listTitles(loaded))

	snap := f.store.Snapshot()
	assert.False(t, snap.Current.Loading)
	require.NotNil(t, snap.Current.Data)
	assert.Equal(t, created.ID, snap.Current.Data.ID)

	mirrored, ok, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, mirrored.ID)
	assert.Equal(t, loaded.ItemCount(), mirrored.ItemCount())
}

func TestFetchBoard_MissingKeepsCurrent(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Open", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	loaded, err := f.store.FetchBoard(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snap := f.store.Snapshot()
	assert.False(t, snap.Current.Loading)
	require.NotNil(t, snap.Current.Data)
	assert.Equal(t, created.ID, snap.Current.Data.ID)
}

func TestDeleteBoard_ClearsCurrentAndMirror(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	kept, err := f.store.CreateBoard(ctx, "Kept", "")
	require.NoError(t, err)
	doomed, err := f.store.CreateBoard(ctx, "Doomed", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, doomed.ID)
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteBoard(ctx, doomed.ID))

	snap := f.store.Snapshot()
	require.Len(t, snap.Boards.Data, 1)
	assert.Equal(t, kept.ID, snap.Boards.Data[0].ID)
	assert.Nil(t, snap.Current.Data)

	_, ok, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "mirror should be cleared")
}

func TestDeleteBoard_OtherBoardKeepsCurrent(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	open, err := f.store.CreateBoard(ctx, "Open", "")
	require.NoError(t, err)
	other, err := f.store.CreateBoard(ctx, "Other", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, open.ID)
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteBoard(ctx, other.ID))

	snap := f.store.Snapshot()
	require.NotNil(t, snap.Current.Data)
	assert.Equal(t, open.ID, snap.Current.Data.ID)

	_, ok, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRestoreFromMirror(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	ok, err := f.store.RestoreFromMirror(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, f.store.Snapshot().Current.Loading)

	saved := &models.Board{ID: "cached", Name: "Cached", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.mirror.Save(ctx, saved))

	ok, err = f.store.RestoreFromMirror(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	snap := f.store.Snapshot()
	assert.False(t, snap.Current.Loading)
	require.NotNil(t, snap.Current.Data)
	assert.Equal(t, "Cached", snap.Current.Data.Name)
}

func TestRestoreBoardFromMirror_StaleThenFetched(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Sprint 1", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	// Another writer adds a list; the mirror still holds three
	_, err = list.NewService(f.repo, nil).AddList(ctx, list.AddListRequest{BoardID: created.ID, Title: "Review"})
	require.NoError(t, err)

	// A fresh process starts from nothing and restores the stale copy
	fresh := New(board.NewService(f.repo, nil), list.NewService(f.repo, nil), item.NewService(f.repo, nil), f.mirror)
	ok, err := fresh.RestoreBoardFromMirror(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	stale := fresh.Snapshot().Current
	assert.False(t, stale.Loading, "a restored snapshot is shown as loaded")
	require.NotNil(t, stale.Data)
	assert.Equal(t, []string{"To-Do", "Done", "Pending"}, listTitles(stale.Data))

	_, err = fresh.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	current := fresh.Snapshot().Current
	assert.False(t, current.Loading)
	assert.Equal(t, []string{"To-Do", "Done", "Pending", "Review"}, listTitles(current.Data))

	mirrored, _, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, mirrored.BoardList, 4, "the fetched tree replaces the mirrored one")
}

func TestRestoreBoardFromMirror_OtherBoard(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	require.NoError(t, f.mirror.Save(ctx, &models.Board{ID: "cached", Name: "Cached"}))

	ok, err := f.store.RestoreBoardFromMirror(ctx, "wanted")
	require.NoError(t, err)
	assert.False(t, ok)

	snap := f.store.Snapshot()
	assert.True(t, snap.Current.Loading, "current board untouched")
	assert.Nil(t, snap.Current.Data)
}

func TestPersistCurrent(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	// Nothing open yet
	require.NoError(t, f.store.PersistCurrent(ctx))
	_, ok, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := f.store.CreateBoard(ctx, "Persisted", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, f.mirror.Clear(ctx))

	require.NoError(t, f.store.PersistCurrent(ctx))
	mirrored, ok, err := f.mirror.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, mirrored.ID)
}

func TestListMutations_RefreshCurrentBoard(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Board", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	added, err := f.store.AddList(ctx, created.ID, "Review")
	require.NoError(t, err)
	assert.Equal(t, 3, added.Order)
	current := f.store.Snapshot().Current.Data
	assert.Equal(t, []string{"To-Do", "Done", "Pending", "Review"}, listTitles(current))

	require.NoError(t, f.store.RenameList(ctx, created.ID, added.ID, "QA"))
	assert.Equal(t, "QA", f.store.Snapshot().Current.Data.BoardList[3].Title)

	require.NoError(t, f.store.MoveList(ctx, created.ID, added.ID, 0))
	assert.Equal(t, []string{"QA", "To-Do", "Done", "Pending"}, listTitles(f.store.Snapshot().Current.Data))

	lists := f.store.Snapshot().Current.Data.BoardList
	require.NoError(t, f.store.ReorderLists(ctx, created.ID, []models.ListOrder{
		{ID: lists[0].ID, Order: 3},
		{ID: lists[3].ID, Order: 0},
	}))
	assert.Equal(t, []string{"Pending", "To-Do", "Done", "QA"}, listTitles(f.store.Snapshot().Current.Data))

	require.NoError(t, f.store.DeleteList(ctx, created.ID, added.ID))
	current = f.store.Snapshot().Current.Data
	assert.Equal(t, []string{"Pending", "To-Do", "Done"}, listTitles(current))
	for i, l := range current.BoardList {
		assert.Equal(t, i, l.Order)
	}
}

func TestItemMutations_RefreshCurrentBoard(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Board", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)
	listID := created.BoardList[0].ID

	added, err := f.store.AddItem(ctx, created.ID, listID, "Write docs", "README first")
	require.NoError(t, err)
	items := f.store.Snapshot().Current.Data.BoardList[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, added.ID, items[1].ID)
	assert.Equal(t, "README first", items[1].Description)

	require.NoError(t, f.store.RenameItem(ctx, created.ID, listID, added.ID, "Write more docs"))
	items = f.store.Snapshot().Current.Data.BoardList[0].Items
	assert.Equal(t, "Write more docs", items[1].Title)
	assert.NotNil(t, items[1].UpdatedAt)

	require.NoError(t, f.store.DeleteItem(ctx, created.ID, listID, added.ID))
	assert.Len(t, f.store.Snapshot().Current.Data.BoardList[0].Items, 1)
}

func TestMutations_OtherBoardLeavesCurrentAlone(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	open, err := f.store.CreateBoard(ctx, "Open", "")
	require.NoError(t, err)
	other, err := f.store.CreateBoard(ctx, "Other", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, open.ID)
	require.NoError(t, err)

	_, err = f.store.AddList(ctx, other.ID, "Elsewhere")
	require.NoError(t, err)

	current := f.store.Snapshot().Current.Data
	assert.Equal(t, open.ID, current.ID)
	assert.Len(t, current.BoardList, 3)
}

func TestMutation_ErrorsPassThrough(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	_, err := f.store.AddList(ctx, "missing", "Title")
	assert.ErrorIs(t, err, list.ErrBoardNotFound)

	err = f.store.DeleteItem(ctx, "b", "l", "missing")
	assert.ErrorIs(t, err, item.ErrItemNotFound)
}

func TestSnapshot_IsCopy(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Board", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	snap := f.store.Snapshot()
	snap.Current.Data.BoardList[0].Title = "mutated"
	snap.Boards.Data[0].Name = "mutated"

	fresh := f.store.Snapshot()
	assert.Equal(t, "To-Do", fresh.Current.Data.BoardList[0].Title)
	assert.Equal(t, "Board", fresh.Boards.Data[0].Name)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	ch, cancel := f.store.Subscribe()
	_, err := f.store.CreateBoard(ctx, "Watched", "")
	require.NoError(t, err)

	select {
	case snap := <-ch:
		require.Len(t, snap.Boards.Data, 1)
		assert.Equal(t, "Watched", snap.Boards.Data[0].Name)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	cancel()
	_, open := <-ch
	for open {
		_, open = <-ch
	}
}

func TestSubscribe_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()
	f := setupStore(t)

	_, cancel := f.store.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			f.store.SetBoardsLoading(i%2 == 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("updates blocked on a full subscriber")
	}
}

func TestHandleEvent_RefreshesCurrentBoard(t *testing.T) {
	t.Parallel()
	f := setupStore(t)
	ctx := context.Background()

	created, err := f.store.CreateBoard(ctx, "Board", "")
	require.NoError(t, err)
	_, err = f.store.FetchBoard(ctx, created.ID)
	require.NoError(t, err)

	// Another process adds a list behind the store's back
	testutil.CreateTestList(t, f.repo, created.ID, "Remote")
	assert.Len(t, f.store.Snapshot().Current.Data.BoardList, 3)

	f.store.HandleEvent(ctx, events.Event{Type: "unrelated", BoardID: created.ID})
	assert.Len(t, f.store.Snapshot().Current.Data.BoardList, 3)

	f.store.HandleEvent(ctx, events.Event{Type: events.EventBoardChanged, BoardID: created.ID})
	assert.Len(t, f.store.Snapshot().Current.Data.BoardList, 4)
	assert.False(t, f.store.Snapshot().Boards.Loading)
}
