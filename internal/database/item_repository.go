package database

import (
	"context"
	"fmt"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/models"
	"github.com/madhankd/madhanboard-v2/internal/ordering"
)

// ItemRepo handles list item document operations.
type ItemRepo struct {
	store docstore.Store
	now   func() time.Time
}

// itemDoc is the stored shape of .../boardLists/{listId}/items/{itemId}
type itemDoc struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	Order       *int   `json:"order,omitempty"`
}

func (d itemDoc) toModel(id string) *models.ListItem {
	return &models.ListItem{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   parseTimestamp(d.CreatedAt),
		UpdatedAt:   parseOptionalTimestamp(d.UpdatedAt),
		Order:       d.Order,
	}
}

// CreateItem stores a new item. Empty descriptions and nil orders are not written.
func (r *ItemRepo) CreateItem(ctx context.Context, boardID, listID, title, description string, order *int) (*models.ListItem, error) {
	createdAt := stamp(r.now())
	fields := docstore.Fields{
		fieldTitle:     title,
		fieldCreatedAt: timestampField(createdAt),
	}
	if description != "" {
		fields[fieldDescription] = description
	}
	if order != nil {
		fields[fieldOrder] = *order
	}

	id, err := r.store.Add(ctx, itemsPath(boardID, listID), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create item in list %s: %w", listID, err)
	}
	return &models.ListItem{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
		Order:       order,
	}, nil
}

// GetItem reads one item
func (r *ItemRepo) GetItem(ctx context.Context, boardID, listID, itemID string) (*models.ListItem, error) {
	if !storable(boardID, listID, itemID) {
		return nil, fmt.Errorf("failed to get item %s: %w", itemID, ErrNotFound)
	}
	doc, err := r.store.Get(ctx, itemPath(boardID, listID, itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
	}
	var d itemDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toModel(doc.ID), nil
}

// ListItems returns the items of a list sorted by order, unordered items
// last, ties by creation time
func (r *ItemRepo) ListItems(ctx context.Context, boardID, listID string) ([]*models.ListItem, error) {
	if !storable(boardID, listID) {
		return []*models.ListItem{}, nil
	}
	docs, err := r.store.Query(ctx, itemsPath(boardID, listID), docstore.Query{OrderBy: fieldOrder})
	if err != nil {
		return nil, fmt.Errorf("failed to list items of list %s: %w", listID, err)
	}
	items := make([]*models.ListItem, 0, len(docs))
	for _, doc := range docs {
		var d itemDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		items = append(items, d.toModel(doc.ID))
	}
	ordering.SortItems(items)
	return items, nil
}

// UpdateItemTitle renames an item and stamps its update time
func (r *ItemRepo) UpdateItemTitle(ctx context.Context, boardID, listID, itemID, title string) error {
	if !storable(boardID, listID, itemID) {
		return fmt.Errorf("failed to update item %s: %w", itemID, ErrNotFound)
	}
	err := r.store.Update(ctx, itemPath(boardID, listID, itemID), docstore.Fields{
		fieldTitle:     title,
		fieldUpdatedAt: timestampField(stamp(r.now())),
	})
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", itemID, err)
	}
	return nil
}

// DeleteItem removes one item. Deleting a missing item is not an error.
func (r *ItemRepo) DeleteItem(ctx context.Context, boardID, listID, itemID string) error {
	if !storable(boardID, listID, itemID) {
		return nil
	}
	if err := r.store.Delete(ctx, itemPath(boardID, listID, itemID)); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// DeleteItems removes several items of one list in a single call
func (r *ItemRepo) DeleteItems(ctx context.Context, boardID, listID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	paths := make([]docstore.Path, len(itemIDs))
	for i, id := range itemIDs {
		paths[i] = itemPath(boardID, listID, id)
	}
	if err := r.store.DeleteAll(ctx, paths); err != nil {
		return fmt.Errorf("failed to delete %d items of list %s: %w", len(itemIDs), listID, err)
	}
	return nil
}
