package item

import "errors"

// Item-related errors
var (
	// Validation errors
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrTitleTooLong   = errors.New("title cannot exceed 200 characters")
	ErrInvalidBoardID = errors.New("invalid board ID")
	ErrInvalidListID  = errors.New("invalid list ID")
	ErrInvalidItemID  = errors.New("invalid item ID")

	// Business logic errors
	ErrListNotFound = errors.New("list not found")
	ErrItemNotFound = errors.New("item not found")
)
