package board

import "errors"

// Board-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name cannot exceed 100 characters")
	ErrInvalidBoardID = errors.New("invalid board ID")

	// Business logic errors
	ErrBoardNotFound = errors.New("board not found")
)
