package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/ordering"
)

// maxTitleLength is the longest item title accepted, in runes
const maxTitleLength = 200

// Service defines all item-related business operations
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (*models.ListItem, error)
	RenameItem(ctx context.Context, req RenameItemRequest) error
	DeleteItem(ctx context.Context, boardID, listID, itemID string) error
}

// AddItemRequest encapsulates data for adding an item to a list
type AddItemRequest struct {
	BoardID     string
	ListID      string
	Title       string
	Description string // Optional
}

// RenameItemRequest encapsulates data for renaming an item
type RenameItemRequest struct {
	BoardID string
	ListID  string
	ItemID  string
	Title   string
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new item service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// AddItem appends an item after the list's current last ordered item
func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*models.ListItem, error) {
	if err := validateIDs(req.BoardID, req.ListID); err != nil {
		return nil, err
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetList(ctx, req.BoardID, req.ListID); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	items, err := s.repo.ListItems(ctx, req.BoardID, req.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	order := ordering.NextItem(items)

	item, err := s.repo.CreateItem(ctx, req.BoardID, req.ListID, title, strings.TrimSpace(req.Description), &order)
	if err != nil {
		slog.Error("failed to create item",
			"board_id", req.BoardID,
			"list_id", req.ListID,
			"error", err)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, req.BoardID)
	return item, nil
}

// RenameItem changes an item title and stamps its update time
func (s *service) RenameItem(ctx context.Context, req RenameItemRequest) error {
	if err := validateIDs(req.BoardID, req.ListID); err != nil {
		return err
	}
	if strings.TrimSpace(req.ItemID) == "" {
		return ErrInvalidItemID
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateItemTitle(ctx, req.BoardID, req.ListID, req.ItemID, title); err != nil {
		if database.IsNotFound(err) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to rename item: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, req.BoardID)
	return nil
}

// DeleteItem removes one item from a list
func (s *service) DeleteItem(ctx context.Context, boardID, listID, itemID string) error {
	if err := validateIDs(boardID, listID); err != nil {
		return err
	}
	if strings.TrimSpace(itemID) == "" {
		return ErrInvalidItemID
	}

	if _, err := s.repo.GetItem(ctx, boardID, listID, itemID); err != nil {
		if database.IsNotFound(err) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to get item: %w", err)
	}

	if err := s.repo.DeleteItem(ctx, boardID, listID, itemID); err != nil {
		slog.Error("failed to delete item",
			"board_id", boardID,
			"list_id", listID,
			"item_id", itemID,
			"error", err)
		return fmt.Errorf("failed to delete item: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, boardID)
	return nil
}

func validateIDs(boardID, listID string) error {
	if strings.TrimSpace(boardID) == "" {
		return ErrInvalidBoardID
	}
	if strings.TrimSpace(listID) == "" {
		return ErrInvalidListID
	}
	return nil
}

// validateTitle trims an item title and checks its length
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
