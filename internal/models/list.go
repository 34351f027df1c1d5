package models

import "time"

// BoardList is an ordered column of a board (e.g., "To-Do", "Done").
// Order is zero-based and unique within the parent board.
type BoardList struct {
	ID        string      `json:"id,omitempty"`
	Title     string      `json:"title"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
	Order     int         `json:"order"`
	Items     []*ListItem `json:"items"`
}

// ListOrder assigns a new order to one list of a board
type ListOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Clone returns a deep copy of the list and its items
func (l *BoardList) Clone() *BoardList {
	if l == nil {
		return nil
	}
	out := *l
	if l.UpdatedAt != nil {
		updated := *l.UpdatedAt
		out.UpdatedAt = &updated
	}
	out.Items = make([]*ListItem, len(l.Items))
	for i, item := range l.Items {
		out.Items[i] = item.Clone()
	}
	return &out
}
