package list

import "errors"

// List-related errors
var (
	// Validation errors
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrTitleTooLong   = errors.New("title cannot exceed 50 characters")
	ErrInvalidBoardID = errors.New("invalid board ID")
	ErrInvalidListID  = errors.New("invalid list ID")
	ErrInvalidReorder = errors.New("invalid list reorder")

	// Business logic errors
	ErrBoardNotFound = errors.New("board not found")
	ErrListNotFound  = errors.New("list not found")
)
