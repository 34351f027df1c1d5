package item

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupList(t *testing.T) (*database.Repository, *testutil.MockEventPublisher, Service, string, string) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	publisher := testutil.NewMockEventPublisher()
	svc := NewService(repo, publisher)

	boardID := testutil.CreateTestBoard(t, repo, "Board")
	listID := testutil.CreateTestList(t, repo, boardID, "To-Do")
	return repo, publisher, svc, boardID, listID
}

func listItems(t *testing.T, repo *database.Repository, boardID, listID string) []*models.ListItem {
	t.Helper()
	items, err := repo.ListItems(context.Background(), boardID, listID)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	return items
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestAddItem_AppendsWithOrder(t *testing.T) {
	t.Parallel()

	repo, publisher, svc, boardID, listID := setupList(t)
	ctx := context.Background()

	for i, title := range []string{"first", "second", "third"} {
		item, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: listID, Title: title})
		if err != nil {
			t.Fatalf("AddItem(%s) failed: %v", title, err)
		}
		if item.Order == nil || *item.Order != i {
			t.Errorf("Item %s got order %v, want %d", title, item.Order, i)
		}
	}

	items := listItems(t, repo, boardID, listID)
	for i, title := range []string{"first", "second", "third"} {
		if items[i].Title != title {
			t.Errorf("Position %d = %s, want %s", i, items[i].Title, title)
		}
	}
	if publisher.EventCount() != 3 {
		t.Errorf("Expected 3 events, got %d", publisher.EventCount())
	}
}

func TestAddItem_OptionalDescription(t *testing.T) {
	t.Parallel()

	repo, _, svc, boardID, listID := setupList(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: listID, Title: "with", Description: "**body**"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetItem(ctx, boardID, listID, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "**body**" {
		t.Errorf("Expected description to be stored, got %q", got.Description)
	}
}

func TestAddItem_Validation(t *testing.T) {
	t.Parallel()

	_, _, svc, boardID, listID := setupList(t)

	tests := []struct {
		name    string
		req     AddItemRequest
		wantErr error
	}{
		{"missing board", AddItemRequest{ListID: listID, Title: "x"}, ErrInvalidBoardID},
		{"missing list", AddItemRequest{BoardID: boardID, Title: "x"}, ErrInvalidListID},
		{"empty title", AddItemRequest{BoardID: boardID, ListID: listID}, ErrEmptyTitle},
		{"title too long", AddItemRequest{BoardID: boardID, ListID: listID, Title: strings.Repeat("x", 201)}, ErrTitleTooLong},
		{"unknown list", AddItemRequest{BoardID: boardID, ListID: "ghost", Title: "x"}, ErrListNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddItem(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAddThenDeleteItem_LeavesListUnchanged(t *testing.T) {
	t.Parallel()

	repo, _, svc, boardID, listID := setupList(t)
	ctx := context.Background()

	for _, title := range []string{"keep-1", "keep-2"} {
		if _, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: listID, Title: title}); err != nil {
			t.Fatal(err)
		}
	}
	before := listItems(t, repo, boardID, listID)

	added, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: listID, Title: "temp"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteItem(ctx, boardID, listID, added.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	after := listItems(t, repo, boardID, listID)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("List changed:\nbefore %+v\nafter  %+v", before, after)
	}

	if err := svc.DeleteItem(ctx, boardID, listID, added.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestRenameItem(t *testing.T) {
	t.Parallel()

	repo, _, svc, boardID, listID := setupList(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: listID, Title: "old", Description: "keep"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.RenameItem(ctx, RenameItemRequest{BoardID: boardID, ListID: listID, ItemID: item.ID, Title: "new"}); err != nil {
		t.Fatalf("RenameItem failed: %v", err)
	}

	got, err := repo.GetItem(ctx, boardID, listID, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "new" || got.Description != "keep" || got.UpdatedAt == nil {
		t.Errorf("Unexpected item after rename: %+v", got)
	}
	if got.Order == nil || *got.Order != 0 {
		t.Errorf("Rename must not touch order, got %v", got.Order)
	}

	err = svc.RenameItem(ctx, RenameItemRequest{BoardID: boardID, ListID: listID, ItemID: "ghost", Title: "x"})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
	err = svc.RenameItem(ctx, RenameItemRequest{BoardID: boardID, ListID: listID, Title: "x"})
	if !errors.Is(err, ErrInvalidItemID) {
		t.Errorf("Expected ErrInvalidItemID, got %v", err)
	}
}

func TestItems_ReservedCharacterIDsAreNotFound(t *testing.T) {
	t.Parallel()

	_, publisher, svc, boardID, listID := setupList(t)
	ctx := context.Background()

	for _, id := range []string{"no:such", "a/b"} {
		if _, err := svc.AddItem(ctx, AddItemRequest{BoardID: boardID, ListID: id, Title: "X"}); !errors.Is(err, ErrListNotFound) {
			t.Errorf("AddItem to list %q: got %v, want ErrListNotFound", id, err)
		}
		if err := svc.RenameItem(ctx, RenameItemRequest{BoardID: boardID, ListID: listID, ItemID: id, Title: "X"}); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("RenameItem(%q): got %v, want ErrItemNotFound", id, err)
		}
		if err := svc.DeleteItem(ctx, boardID, listID, id); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("DeleteItem(%q): got %v, want ErrItemNotFound", id, err)
		}
	}

	if publisher.EventCount() != 0 {
		t.Errorf("Failed writes should publish nothing, got %d events", publisher.EventCount())
	}
}
