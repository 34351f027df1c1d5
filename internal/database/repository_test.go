package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

func TestCreateBoard_StoresDocument(t *testing.T) {
	repo, mr := setupTestRepo(t)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Sprint 1", "desc")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if board.ID == "" {
		t.Fatal("expected store-assigned ID")
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !board.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", board.CreatedAt, want)
	}

	if got := mr.HGet("test:boards/"+board.ID, "created_at"); got != `"2024-01-01T00:00:00.000Z"` {
		t.Errorf("stored created_at = %s", got)
	}

	summary, err := repo.GetBoardSummary(ctx, board.ID)
	if err != nil {
		t.Fatalf("GetBoardSummary failed: %v", err)
	}
	if summary.Name != "Sprint 1" || summary.Description != "desc" || !summary.CreatedAt.Equal(want) {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestGetBoardSummary_MissingIsNil(t *testing.T) {
	repo, _ := setupTestRepo(t)

	summary, err := repo.GetBoardSummary(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("expected no error for a missing board, got %v", err)
	}
	if summary != nil {
		t.Errorf("expected nil summary, got %+v", summary)
	}
}

func TestListBoardSummaries_NewestFirst(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.CreateBoard(ctx, name, ""); err != nil {
			t.Fatalf("CreateBoard(%s) failed: %v", name, err)
		}
	}

	boards, err := repo.ListBoardSummaries(ctx)
	if err != nil {
		t.Fatalf("ListBoardSummaries failed: %v", err)
	}
	if len(boards) != 3 {
		t.Fatalf("expected 3 boards, got %d", len(boards))
	}
	for i, name := range []string{"third", "second", "first"} {
		if boards[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, boards[i].Name, name)
		}
	}
}

func TestLists_SortedByOrder(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	// Created out of order on purpose
	for _, l := range []struct {
		title string
		order int
	}{{"c", 2}, {"a", 0}, {"b", 1}} {
		if _, err := repo.CreateList(ctx, "b1", l.title, l.order); err != nil {
			t.Fatalf("CreateList failed: %v", err)
		}
	}

	lists, err := repo.ListLists(ctx, "b1")
	if err != nil {
		t.Fatalf("ListLists failed: %v", err)
	}
	for i, title := range []string{"a", "b", "c"} {
		if lists[i].Title != title || lists[i].Order != i {
			t.Errorf("position %d = %s/%d", i, lists[i].Title, lists[i].Order)
		}
		if lists[i].UpdatedAt != nil {
			t.Errorf("new list should have no updated_at")
		}
	}
}

func TestUpdateListTitle_StampsUpdatedAt(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	list, err := repo.CreateList(ctx, "b1", "To-Do", 0)
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if err := repo.UpdateListTitle(ctx, "b1", list.ID, "Backlog"); err != nil {
		t.Fatalf("UpdateListTitle failed: %v", err)
	}

	got, err := repo.GetList(ctx, "b1", list.ID)
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if got.Title != "Backlog" {
		t.Errorf("Title = %s", got.Title)
	}
	if got.Order != 0 {
		t.Errorf("Order changed to %d", got.Order)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt = %v, CreatedAt = %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateListTitle_MissingList(t *testing.T) {
	repo, _ := setupTestRepo(t)

	err := repo.UpdateListTitle(context.Background(), "b1", "ghost", "x")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateListOrders_Atomic(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	a, _ := repo.CreateList(ctx, "b1", "a", 0)
	b, _ := repo.CreateList(ctx, "b1", "b", 1)

	err := repo.UpdateListOrders(ctx, "b1", []models.ListOrder{
		{ID: a.ID, Order: 1},
		{ID: "ghost", Order: 2},
		{ID: b.ID, Order: 0},
	})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	lists, _ := repo.ListLists(ctx, "b1")
	if lists[0].ID != a.ID || lists[1].ID != b.ID {
		t.Fatal("failed batch must leave orders untouched")
	}

	if err := repo.UpdateListOrders(ctx, "b1", []models.ListOrder{{ID: a.ID, Order: 1}, {ID: b.ID, Order: 0}}); err != nil {
		t.Fatalf("UpdateListOrders failed: %v", err)
	}
	lists, _ = repo.ListLists(ctx, "b1")
	if lists[0].ID != b.ID || lists[1].ID != a.ID {
		t.Error("orders were not swapped")
	}
}

func TestItems_CreateSortDelete(t *testing.T) {
	repo, mr := setupTestRepo(t)
	ctx := context.Background()

	zero, one := 0, 1
	second, err := repo.CreateItem(ctx, "b1", "l1", "second", "", &one)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	unordered, _ := repo.CreateItem(ctx, "b1", "l1", "unordered", "", nil)
	first, _ := repo.CreateItem(ctx, "b1", "l1", "first", "with body", &zero)

	if mr.HGet("test:boards/b1/boardLists/l1/items/"+unordered.ID, "order") != "" {
		t.Error("nil order must not be written")
	}

	items, err := repo.ListItems(ctx, "b1", "l1")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	wantIDs := []string{first.ID, second.ID, unordered.ID}
	for i, id := range wantIDs {
		if items[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, items[i].Title, id)
		}
	}
	if items[0].Description != "with body" {
		t.Errorf("Description = %q", items[0].Description)
	}

	if err := repo.UpdateItemTitle(ctx, "b1", "l1", first.ID, "renamed"); err != nil {
		t.Fatalf("UpdateItemTitle failed: %v", err)
	}
	got, _ := repo.GetItem(ctx, "b1", "l1", first.ID)
	if got.Title != "renamed" || got.UpdatedAt == nil || got.Description != "with body" {
		t.Errorf("unexpected item after rename: %+v", got)
	}

	if err := repo.DeleteItem(ctx, "b1", "l1", unordered.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if err := repo.DeleteItem(ctx, "b1", "l1", unordered.ID); err != nil {
		t.Fatalf("second DeleteItem should succeed: %v", err)
	}
	if err := repo.DeleteItems(ctx, "b1", "l1", []string{first.ID, second.ID}); err != nil {
		t.Fatalf("DeleteItems failed: %v", err)
	}
	items, _ = repo.ListItems(ctx, "b1", "l1")
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestDeleteBoardDocument_Idempotent(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	board, _ := repo.CreateBoard(ctx, "x", "")
	for i := 0; i < 2; i++ {
		if err := repo.DeleteBoardDocument(ctx, board.ID); err != nil {
			t.Fatalf("DeleteBoardDocument attempt %d failed: %v", i+1, err)
		}
	}
	summary, err := repo.GetBoardSummary(ctx, board.ID)
	if err != nil || summary != nil {
		t.Errorf("expected board gone, got %+v, %v", summary, err)
	}
}

func TestUnstorableIDs_ReadAsAbsent(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Board", "")
	if err != nil {
		t.Fatal(err)
	}
	list, err := repo.CreateList(ctx, board.ID, "To-Do", 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"no:such", "a/b"} {
		t.Run(id, func(t *testing.T) {
			summary, err := repo.GetBoardSummary(ctx, id)
			if err != nil || summary != nil {
				t.Errorf("GetBoardSummary(%q) = %+v, %v; want nil, nil", id, summary, err)
			}
			lists, err := repo.ListLists(ctx, id)
			if err != nil || len(lists) != 0 {
				t.Errorf("ListLists(%q) = %v, %v; want empty", id, lists, err)
			}
			if _, err := repo.GetList(ctx, board.ID, id); !IsNotFound(err) {
				t.Errorf("GetList(%q) error = %v, want not found", id, err)
			}
			if err := repo.UpdateListTitle(ctx, board.ID, id, "x"); !IsNotFound(err) {
				t.Errorf("UpdateListTitle(%q) error = %v, want not found", id, err)
			}
			if err := repo.UpdateListOrders(ctx, board.ID, []models.ListOrder{{ID: id, Order: 0}}); !IsNotFound(err) {
				t.Errorf("UpdateListOrders(%q) error = %v, want not found", id, err)
			}
			items, err := repo.ListItems(ctx, board.ID, id)
			if err != nil || len(items) != 0 {
				t.Errorf("ListItems(%q) = %v, %v; want empty", id, items, err)
			}
			if _, err := repo.GetItem(ctx, board.ID, list.ID, id); !IsNotFound(err) {
				t.Errorf("GetItem(%q) error = %v, want not found", id, err)
			}
			if err := repo.UpdateItemTitle(ctx, board.ID, list.ID, id, "x"); !IsNotFound(err) {
				t.Errorf("UpdateItemTitle(%q) error = %v, want not found", id, err)
			}
			if err := repo.DeleteItem(ctx, board.ID, list.ID, id); err != nil {
				t.Errorf("DeleteItem(%q) error = %v, want nil", id, err)
			}
			if err := repo.DeleteListDocument(ctx, board.ID, id); err != nil {
				t.Errorf("DeleteListDocument(%q) error = %v, want nil", id, err)
			}
			if err := repo.DeleteBoardDocument(ctx, id); err != nil {
				t.Errorf("DeleteBoardDocument(%q) error = %v, want nil", id, err)
			}
		})
	}

	// The real list is untouched
	got, err := repo.GetList(ctx, board.ID, list.ID)
	if err != nil || got.Order != 0 {
		t.Errorf("list changed: %+v, %v", got, err)
	}
}
