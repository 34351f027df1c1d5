package models

import "time"

// ListItem is a single card inside a board list.
// Order is optional: items written before ordering was tracked have none.
type ListItem struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Order       *int       `json:"order,omitempty"`
}

// Clone returns a copy of the item that shares no pointers with it
func (i *ListItem) Clone() *ListItem {
	if i == nil {
		return nil
	}
	out := *i
	if i.UpdatedAt != nil {
		updated := *i.UpdatedAt
		out.UpdatedAt = &updated
	}
	if i.Order != nil {
		order := *i.Order
		out.Order = &order
	}
	return &out
}
