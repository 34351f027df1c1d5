package list

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/ordering"
)

// maxTitleLength is the longest list title accepted, in runes
const maxTitleLength = 50

// Service defines all list-related business operations
type Service interface {
	AddList(ctx context.Context, req AddListRequest) (*models.BoardList, error)
	RenameList(ctx context.Context, req RenameListRequest) error
	DeleteList(ctx context.Context, boardID, listID string) error

	// Ordering
	ReorderLists(ctx context.Context, boardID string, orders []models.ListOrder) error
	MoveList(ctx context.Context, req MoveListRequest) error
}

// AddListRequest encapsulates data for appending a list to a board
type AddListRequest struct {
	BoardID string
	Title   string
}

// RenameListRequest encapsulates data for renaming a list
type RenameListRequest struct {
	BoardID string
	ListID  string
	Title   string
}

// MoveListRequest moves one list to a zero-based position.
// Positions past either end are clamped.
type MoveListRequest struct {
	BoardID  string
	ListID   string
	Position int
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new list service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// AddList appends a list after the board's current last list
func (s *service) AddList(ctx context.Context, req AddListRequest) (*models.BoardList, error) {
	if err := validateBoardID(req.BoardID); err != nil {
		return nil, err
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.requireBoard(ctx, req.BoardID); err != nil {
		return nil, err
	}

	// Read-then-append is not guarded; concurrent appenders can share an order
	lists, err := s.repo.ListLists(ctx, req.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to read lists: %w", err)
	}

	list, err := s.repo.CreateList(ctx, req.BoardID, title, ordering.NextList(lists))
	if err != nil {
		slog.Error("failed to create list", "board_id", req.BoardID, "title", title, "error", err)
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, req.BoardID)
	return list, nil
}

// RenameList changes a list title and stamps its update time
func (s *service) RenameList(ctx context.Context, req RenameListRequest) error {
	if err := validateIDs(req.BoardID, req.ListID); err != nil {
		return err
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateListTitle(ctx, req.BoardID, req.ListID, title); err != nil {
		if database.IsNotFound(err) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to rename list: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, req.BoardID)
	return nil
}

// DeleteList removes a list and its items, then renumbers the remaining
// lists so their orders stay dense
func (s *service) DeleteList(ctx context.Context, boardID, listID string) error {
	if err := validateIDs(boardID, listID); err != nil {
		return err
	}

	if _, err := s.repo.GetList(ctx, boardID, listID); err != nil {
		if database.IsNotFound(err) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to get list: %w", err)
	}

	items, err := s.repo.ListItems(ctx, boardID, listID)
	if err != nil {
		return fmt.Errorf("failed to read list items: %w", err)
	}
	itemIDs := make([]string, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	if err := s.repo.DeleteItems(ctx, boardID, listID, itemIDs); err != nil {
		slog.Error("failed to delete list items", "board_id", boardID, "list_id", listID, "error", err)
		return fmt.Errorf("failed to delete list items: %w", err)
	}
	if err := s.repo.DeleteListDocument(ctx, boardID, listID); err != nil {
		slog.Error("failed to delete list", "board_id", boardID, "list_id", listID, "error", err)
		return fmt.Errorf("failed to delete list: %w", err)
	}

	// The list is gone either way; a failed compaction only leaves a gap
	events.NotifyBoardChanged(ctx, s.eventClient, boardID)

	remaining, err := s.repo.ListLists(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to read lists for compaction: %w", err)
	}
	if err := s.repo.UpdateListOrders(ctx, boardID, ordering.Compact(remaining)); err != nil {
		slog.Error("failed to compact list orders", "board_id", boardID, "error", err)
		return fmt.Errorf("failed to compact list orders: %w", err)
	}
	return nil
}

// ReorderLists applies new orders to a board's lists in one atomic batch.
// An invalid request changes nothing.
func (s *service) ReorderLists(ctx context.Context, boardID string, orders []models.ListOrder) error {
	if err := validateBoardID(boardID); err != nil {
		return err
	}
	if err := s.requireBoard(ctx, boardID); err != nil {
		return err
	}

	current, err := s.repo.ListLists(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to read lists: %w", err)
	}
	if err := ordering.ValidateReorder(current, orders); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReorder, err)
	}

	return s.applyOrders(ctx, boardID, current, orders)
}

// MoveList moves one list to a new position, shifting the lists in between
func (s *service) MoveList(ctx context.Context, req MoveListRequest) error {
	if err := validateIDs(req.BoardID, req.ListID); err != nil {
		return err
	}

	current, err := s.repo.ListLists(ctx, req.BoardID)
	if err != nil {
		return fmt.Errorf("failed to read lists: %w", err)
	}
	orders, err := ordering.Move(current, req.ListID, req.Position)
	if err != nil {
		if errors.Is(err, ordering.ErrUnknownTarget) {
			return ErrListNotFound
		}
		return fmt.Errorf("%w: %w", ErrInvalidReorder, err)
	}

	return s.applyOrders(ctx, req.BoardID, current, orders)
}

func (s *service) applyOrders(ctx context.Context, boardID string, current []*models.BoardList, orders []models.ListOrder) error {
	changed := ordering.Changed(current, orders)
	if len(changed) == 0 {
		return nil
	}
	if err := s.repo.UpdateListOrders(ctx, boardID, changed); err != nil {
		if database.IsNotFound(err) {
			// A list vanished between read and write; nothing was applied
			return ErrListNotFound
		}
		slog.Error("failed to reorder lists", "board_id", boardID, "error", err)
		return fmt.Errorf("failed to reorder lists: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, boardID)
	return nil
}

func (s *service) requireBoard(ctx context.Context, boardID string) error {
	board, err := s.repo.GetBoardSummary(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	if board == nil {
		return ErrBoardNotFound
	}
	return nil
}

func validateBoardID(boardID string) error {
	if strings.TrimSpace(boardID) == "" {
		return ErrInvalidBoardID
	}
	return nil
}

func validateIDs(boardID, listID string) error {
	if err := validateBoardID(boardID); err != nil {
		return err
	}
	if strings.TrimSpace(listID) == "" {
		return ErrInvalidListID
	}
	return nil
}

// validateTitle trims a list title and checks its length
func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
