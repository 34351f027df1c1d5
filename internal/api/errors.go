package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
	itemservice "github.com/madhankd/madhanboard-v2/internal/services/item"
	listservice "github.com/madhankd/madhanboard-v2/internal/services/list"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

var notFoundErrors = []error{
	boardservice.ErrBoardNotFound,
	listservice.ErrBoardNotFound,
	listservice.ErrListNotFound,
	itemservice.ErrListNotFound,
	itemservice.ErrItemNotFound,
}

var validationErrors = []error{
	boardservice.ErrEmptyName,
	boardservice.ErrNameTooLong,
	boardservice.ErrInvalidBoardID,
	listservice.ErrEmptyTitle,
	listservice.ErrTitleTooLong,
	listservice.ErrInvalidBoardID,
	listservice.ErrInvalidListID,
	listservice.ErrInvalidReorder,
	itemservice.ErrEmptyTitle,
	itemservice.ErrTitleTooLong,
	itemservice.ErrInvalidBoardID,
	itemservice.ErrInvalidListID,
	itemservice.ErrInvalidItemID,
}

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// writeError responds with the status matching err and a JSON error body
func (s *Server) writeError(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
	}
	return c.JSON(status, errorResponse{Error: err.Error()})
}

// handleHTTPError renders echo's own errors (unknown route, bad method,
// bind failures) with the same body shape as service errors
func handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorResponse{Error: message})
}
