package cli

import (
	"errors"

	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
	itemservice "github.com/madhankd/madhanboard-v2/internal/services/item"
	listservice "github.com/madhankd/madhanboard-v2/internal/services/list"
)

// ErrNoBoard is returned when a command needs a board and none was given
var ErrNoBoard = errors.New("no board specified (use --board or set " + EnvBoard + ")")

// Classify maps a service error to an error code and exit code
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, boardservice.ErrBoardNotFound),
		errors.Is(err, listservice.ErrBoardNotFound):
		return "BOARD_NOT_FOUND", ExitNotFound
	case errors.Is(err, listservice.ErrListNotFound),
		errors.Is(err, itemservice.ErrListNotFound):
		return "LIST_NOT_FOUND", ExitNotFound
	case errors.Is(err, itemservice.ErrItemNotFound):
		return "ITEM_NOT_FOUND", ExitNotFound
	case errors.Is(err, listservice.ErrInvalidReorder):
		return "INVALID_REORDER", ExitValidation
	case errors.Is(err, boardservice.ErrEmptyName),
		errors.Is(err, boardservice.ErrNameTooLong),
		errors.Is(err, listservice.ErrEmptyTitle),
		errors.Is(err, listservice.ErrTitleTooLong),
		errors.Is(err, itemservice.ErrEmptyTitle),
		errors.Is(err, itemservice.ErrTitleTooLong):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, boardservice.ErrInvalidBoardID),
		errors.Is(err, listservice.ErrInvalidBoardID),
		errors.Is(err, listservice.ErrInvalidListID),
		errors.Is(err, itemservice.ErrInvalidBoardID),
		errors.Is(err, itemservice.ErrInvalidListID),
		errors.Is(err, itemservice.ErrInvalidItemID),
		errors.Is(err, ErrNoBoard):
		return "USAGE_ERROR", ExitUsage
	default:
		return "INTERNAL_ERROR", ExitError
	}
}
