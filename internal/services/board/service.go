package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

// maxNameLength is the longest board name accepted, in runes
const maxNameLength = 100

// Service defines all board-related business operations
type Service interface {
	// Read operations
	ListBoards(ctx context.Context) ([]*models.BoardSummary, error)
	GetBoard(ctx context.Context, boardID string) (*models.Board, error)

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	DeleteBoard(ctx context.Context, boardID string) error
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Name        string
	Description string
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new board service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// ListBoards returns all boards, newest first
func (s *service) ListBoards(ctx context.Context) ([]*models.BoardSummary, error) {
	boards, err := s.repo.ListBoardSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard loads the full board tree.
// Returns nil without an error if the board does not exist.
func (s *service) GetBoard(ctx context.Context, boardID string) (*models.Board, error) {
	if strings.TrimSpace(boardID) == "" {
		return nil, ErrInvalidBoardID
	}
	board, err := LoadBoard(ctx, s.repo, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board %s: %w", boardID, err)
	}
	return board, nil
}

// CreateBoard creates a board and seeds the default lists and items.
//
// Seeding runs sequentially and is not rolled back: if it fails partway the
// board keeps whatever was created and the error is returned.
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)

	board, err := s.repo.CreateBoard(ctx, name, description)
	if err != nil {
		slog.Error("failed to create board", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	defer events.NotifyBoardChanged(ctx, s.eventClient, board.ID)

	for i, tmpl := range models.DefaultBoardLists {
		list, err := s.repo.CreateList(ctx, board.ID, tmpl.Title, i)
		if err != nil {
			slog.Error("failed to seed default list",
				"board_id", board.ID,
				"list", tmpl.Title,
				"error", err)
			return board, fmt.Errorf("failed to seed list %q: %w", tmpl.Title, err)
		}

		for j, itemTmpl := range tmpl.Items {
			order := j
			item, err := s.repo.CreateItem(ctx, board.ID, list.ID, itemTmpl.Title, itemTmpl.Description, &order)
			if err != nil {
				slog.Error("failed to seed default item",
					"board_id", board.ID,
					"list_id", list.ID,
					"item", itemTmpl.Title,
					"error", err)
				board.BoardList = append(board.BoardList, list)
				return board, fmt.Errorf("failed to seed item %q: %w", itemTmpl.Title, err)
			}
			list.Items = append(list.Items, item)
		}
		board.BoardList = append(board.BoardList, list)
	}

	slog.Info("board created", "board_id", board.ID, "lists", len(board.BoardList))
	return board, nil
}

// DeleteBoard removes a board with all its lists and items.
//
// Deletes run list by list: items first, then the list, and the board
// document last. A failure stops the cascade and is returned; running the
// delete again finishes the job.
func (s *service) DeleteBoard(ctx context.Context, boardID string) error {
	if strings.TrimSpace(boardID) == "" {
		return ErrInvalidBoardID
	}

	summary, err := s.repo.GetBoardSummary(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}

	lists, err := s.repo.ListLists(ctx, boardID)
	if err != nil {
		slog.Error("failed to list lists for board delete", "board_id", boardID, "error", err)
		return fmt.Errorf("failed to delete board: %w", err)
	}

	for _, list := range lists {
		if err := s.deleteListCascade(ctx, boardID, list.ID); err != nil {
			slog.Error("failed to delete board list",
				"board_id", boardID,
				"list_id", list.ID,
				"error", err)
			return fmt.Errorf("failed to delete board: %w", err)
		}
	}

	if summary == nil {
		// Orphaned lists (if any) are gone now, but there was no board
		return ErrBoardNotFound
	}

	if err := s.repo.DeleteBoardDocument(ctx, boardID); err != nil {
		slog.Error("failed to delete board document", "board_id", boardID, "error", err)
		return fmt.Errorf("failed to delete board: %w", err)
	}

	events.NotifyBoardChanged(ctx, s.eventClient, boardID)
	slog.Info("board deleted", "board_id", boardID, "lists", len(lists))
	return nil
}

func (s *service) deleteListCascade(ctx context.Context, boardID, listID string) error {
	items, err := s.repo.ListItems(ctx, boardID, listID)
	if err != nil {
		return err
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	if err := s.repo.DeleteItems(ctx, boardID, listID, ids); err != nil {
		return err
	}
	return s.repo.DeleteListDocument(ctx, boardID, listID)
}

// validateName trims a board name and checks its length
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
