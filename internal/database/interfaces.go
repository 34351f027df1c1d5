// Package database maps boards, lists and items onto a hierarchical document store
package database

import (
	"context"

	"github.com/madhankd/madhanboard-v2/internal/models"
)

// BoardRepository defines board document operations.
type BoardRepository interface {
	CreateBoard(ctx context.Context, name, description string) (*models.Board, error)
	GetBoardSummary(ctx context.Context, boardID string) (*models.BoardSummary, error)
	ListBoardSummaries(ctx context.Context) ([]*models.BoardSummary, error)
	DeleteBoardDocument(ctx context.Context, boardID string) error
}

// ListReader defines read operations for lists.
type ListReader interface {
	GetList(ctx context.Context, boardID, listID string) (*models.BoardList, error)
	ListLists(ctx context.Context, boardID string) ([]*models.BoardList, error)
}

// ListWriter defines write operations for lists.
type ListWriter interface {
	CreateList(ctx context.Context, boardID, title string, order int) (*models.BoardList, error)
	UpdateListTitle(ctx context.Context, boardID, listID, title string) error
	UpdateListOrders(ctx context.Context, boardID string, orders []models.ListOrder) error
	DeleteListDocument(ctx context.Context, boardID, listID string) error
}

// ListRepository combines all list operations.
type ListRepository interface {
	ListReader
	ListWriter
}

// ItemReader defines read operations for items.
type ItemReader interface {
	GetItem(ctx context.Context, boardID, listID, itemID string) (*models.ListItem, error)
	ListItems(ctx context.Context, boardID, listID string) ([]*models.ListItem, error)
}

// ItemWriter defines write operations for items.
type ItemWriter interface {
	CreateItem(ctx context.Context, boardID, listID, title, description string, order *int) (*models.ListItem, error)
	UpdateItemTitle(ctx context.Context, boardID, listID, itemID, title string) error
	DeleteItem(ctx context.Context, boardID, listID, itemID string) error
	DeleteItems(ctx context.Context, boardID, listID string, itemIDs []string) error
}

// ItemRepository combines all item operations.
type ItemRepository interface {
	ItemReader
	ItemWriter
}
