package database

import (
	"context"
	"fmt"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/ordering"
)

// ListRepo handles board list document operations.
type ListRepo struct {
	store docstore.Store
	now   func() time.Time
}

// listDoc is the stored shape of boards/{boardId}/boardLists/{listId}
type listDoc struct {
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
	Order     int    `json:"order"`
}

func (d listDoc) toModel(id string) *models.BoardList {
	return &models.BoardList{
		ID:        id,
		Title:     d.Title,
		CreatedAt: parseTimestamp(d.CreatedAt),
		UpdatedAt: parseOptionalTimestamp(d.UpdatedAt),
		Order:     d.Order,
		Items:     []*models.ListItem{},
	}
}

// CreateList stores a new list at the given order
func (r *ListRepo) CreateList(ctx context.Context, boardID, title string, order int) (*models.BoardList, error) {
	createdAt := stamp(r.now())
	id, err := r.store.Add(ctx, listsPath(boardID), docstore.Fields{
		fieldTitle:     title,
		fieldCreatedAt: timestampField(createdAt),
		fieldOrder:     order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list on board %s: %w", boardID, err)
	}
	return &models.BoardList{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt,
		Order:     order,
		Items:     []*models.ListItem{},
	}, nil
}

// GetList reads one list without its items
func (r *ListRepo) GetList(ctx context.Context, boardID, listID string) (*models.BoardList, error) {
	if !storable(boardID, listID) {
		return nil, fmt.Errorf("failed to get list %s: %w", listID, ErrNotFound)
	}
	doc, err := r.store.Get(ctx, listPath(boardID, listID))
	if err != nil {
		return nil, fmt.Errorf("failed to get list %s: %w", listID, err)
	}
	var d listDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toModel(doc.ID), nil
}

// ListLists returns the lists of a board sorted ascending by order, without items
func (r *ListRepo) ListLists(ctx context.Context, boardID string) ([]*models.BoardList, error) {
	if !storable(boardID) {
		return []*models.BoardList{}, nil
	}
	docs, err := r.store.Query(ctx, listsPath(boardID), docstore.Query{OrderBy: fieldOrder})
	if err != nil {
		return nil, fmt.Errorf("failed to list lists of board %s: %w", boardID, err)
	}
	lists := make([]*models.BoardList, 0, len(docs))
	for _, doc := range docs {
		var d listDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		lists = append(lists, d.toModel(doc.ID))
	}
	// Equal orders only occur after racing appends; keep them deterministic
	ordering.SortLists(lists)
	return lists, nil
}

// UpdateListTitle renames a list and stamps its update time
func (r *ListRepo) UpdateListTitle(ctx context.Context, boardID, listID, title string) error {
	if !storable(boardID, listID) {
		return fmt.Errorf("failed to update list %s: %w", listID, ErrNotFound)
	}
	err := r.store.Update(ctx, listPath(boardID, listID), docstore.Fields{
		fieldTitle:     title,
		fieldUpdatedAt: timestampField(stamp(r.now())),
	})
	if err != nil {
		return fmt.Errorf("failed to update list %s: %w", listID, err)
	}
	return nil
}

// UpdateListOrders writes new orders for several lists of one board as a
// single atomic batch
func (r *ListRepo) UpdateListOrders(ctx context.Context, boardID string, orders []models.ListOrder) error {
	if len(orders) == 0 {
		return nil
	}
	writes := make([]docstore.Write, len(orders))
	for i, o := range orders {
		if !storable(boardID, o.ID) {
			return fmt.Errorf("failed to update list orders on board %s: list %s: %w", boardID, o.ID, ErrNotFound)
		}
		writes[i] = docstore.Write{
			Path:   listPath(boardID, o.ID),
			Fields: docstore.Fields{fieldOrder: o.Order},
		}
	}
	if err := r.store.BatchUpdate(ctx, writes); err != nil {
		return fmt.Errorf("failed to update list orders on board %s: %w", boardID, err)
	}
	return nil
}

// DeleteListDocument removes the list document only; callers delete its
// items first
func (r *ListRepo) DeleteListDocument(ctx context.Context, boardID, listID string) error {
	if !storable(boardID, listID) {
		return nil
	}
	if err := r.store.Delete(ctx, listPath(boardID, listID)); err != nil {
		return fmt.Errorf("failed to delete list %s: %w", listID, err)
	}
	return nil
}
