package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

// BoardRepo handles board document operations.
type BoardRepo struct {
	store docstore.Store
	now   func() time.Time
}

// boardDoc is the stored shape of boards/{boardId}
type boardDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func (d boardDoc) toSummary(id string) *models.BoardSummary {
	return &models.BoardSummary{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   parseTimestamp(d.CreatedAt),
	}
}

// CreateBoard stores a new board document stamped with the current time
func (r *BoardRepo) CreateBoard(ctx context.Context, name, description string) (*models.Board, error) {
	createdAt := stamp(r.now())
	id, err := r.store.Add(ctx, boardsPath(), docstore.Fields{
		fieldName:        name,
		fieldDescription: description,
		fieldCreatedAt:   timestampField(createdAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &models.Board{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
		BoardList:   []*models.BoardList{},
	}, nil
}

// GetBoardSummary reads a board's metadata.
// Returns nil without an error if the board does not exist.
func (r *BoardRepo) GetBoardSummary(ctx context.Context, boardID string) (*models.BoardSummary, error) {
	if !storable(boardID) {
		return nil, nil
	}
	doc, err := r.store.Get(ctx, boardPath(boardID))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board %s: %w", boardID, err)
	}
	var d boardDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toSummary(doc.ID), nil
}

// ListBoardSummaries returns every board, newest first
func (r *BoardRepo) ListBoardSummaries(ctx context.Context) ([]*models.BoardSummary, error) {
	docs, err := r.store.Query(ctx, boardsPath(), docstore.Query{OrderBy: fieldCreatedAt, Descending: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	boards := make([]*models.BoardSummary, 0, len(docs))
	for _, doc := range docs {
		var d boardDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		boards = append(boards, d.toSummary(doc.ID))
	}
	return boards, nil
}

// DeleteBoardDocument removes the board document only; callers cascade to
// lists and items first
func (r *BoardRepo) DeleteBoardDocument(ctx context.Context, boardID string) error {
	if !storable(boardID) {
		return nil
	}
	if err := r.store.Delete(ctx, boardPath(boardID)); err != nil {
		return fmt.Errorf("failed to delete board %s: %w", boardID, err)
	}
	return nil
}
