package models

import "time"

// Board is the top-level container of a kanban workspace.
// BoardList is only populated when the board is loaded as a full tree.
type Board struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	BoardList   []*BoardList `json:"boardList"`
}

// BoardSummary is a board without its lists, used for the board index
type BoardSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary strips the nested lists off a board
func (b *Board) Summary() *BoardSummary {
	return &BoardSummary{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// ItemCount returns the number of items across all lists of the board
func (b *Board) ItemCount() int {
	count := 0
	for _, list := range b.BoardList {
		count += len(list.Items)
	}
	return count
}


// Clone returns a deep copy of the board tree
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := *b
	out.BoardList = make([]*BoardList, len(b.BoardList))
	for i, list := range b.BoardList {
		out.BoardList[i] = list.Clone()
	}
	return &out
}
