package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/madhankd/madhanboard-v2/internal/models"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
	itemservice "github.com/madhankd/madhanboard-v2/internal/services/item"
	listservice "github.com/madhankd/madhanboard-v2/internal/services/list"
)

type boardsResponse struct {
	Boards []*models.BoardSummary `json:"boards"`
}

type createBoardBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type titleBody struct {
	Title string `json:"title"`
}

type addItemBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type reorderBody struct {
	Orders []models.ListOrder `json:"orders"`
}

type positionBody struct {
	Position *int `json:"position"`
}

// errMissingPosition is returned when a move request has no position
var errMissingPosition = errors.New("position is required")

// bind decodes the JSON body into v, answering 400 on malformed input
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

// ============================================================================
// BOARDS
// ============================================================================

func (s *Server) listBoards(c echo.Context) error {
	boards, err := s.app.BoardService.ListBoards(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	if boards == nil {
		boards = []*models.BoardSummary{}
	}
	return c.JSON(http.StatusOK, boardsResponse{Boards: boards})
}

func (s *Server) createBoard(c echo.Context) error {
	var body createBoardBody
	if err := bind(c, &body); err != nil {
		return err
	}
	board, err := s.app.BoardService.CreateBoard(c.Request().Context(), boardservice.CreateBoardRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, board)
}

func (s *Server) getBoard(c echo.Context) error {
	board, err := s.app.BoardService.GetBoard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	if board == nil {
		return s.writeError(c, boardservice.ErrBoardNotFound)
	}
	return c.JSON(http.StatusOK, board)
}

func (s *Server) deleteBoard(c echo.Context) error {
	if err := s.app.BoardService.DeleteBoard(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ============================================================================
// LISTS
// ============================================================================

func (s *Server) addList(c echo.Context) error {
	var body titleBody
	if err := bind(c, &body); err != nil {
		return err
	}
	list, err := s.app.ListService.AddList(c.Request().Context(), listservice.AddListRequest{
		BoardID: c.Param("id"),
		Title:   body.Title,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (s *Server) renameList(c echo.Context) error {
	var body titleBody
	if err := bind(c, &body); err != nil {
		return err
	}
	err := s.app.ListService.RenameList(c.Request().Context(), listservice.RenameListRequest{
		BoardID: c.Param("id"),
		ListID:  c.Param("listId"),
		Title:   body.Title,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) reorderLists(c echo.Context) error {
	var body reorderBody
	if err := bind(c, &body); err != nil {
		return err
	}
	if err := s.app.ListService.ReorderLists(c.Request().Context(), c.Param("id"), body.Orders); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) moveList(c echo.Context) error {
	var body positionBody
	if err := bind(c, &body); err != nil {
		return err
	}
	if body.Position == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errMissingPosition.Error()})
	}
	err := s.app.ListService.MoveList(c.Request().Context(), listservice.MoveListRequest{
		BoardID:  c.Param("id"),
		ListID:   c.Param("listId"),
		Position: *body.Position,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteList(c echo.Context) error {
	if err := s.app.ListService.DeleteList(c.Request().Context(), c.Param("id"), c.Param("listId")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ============================================================================
// ITEMS
// ============================================================================

func (s *Server) addItem(c echo.Context) error {
	var body addItemBody
	if err := bind(c, &body); err != nil {
		return err
	}
	item, err := s.app.ItemService.AddItem(c.Request().Context(), itemservice.AddItemRequest{
		BoardID:     c.Param("id"),
		ListID:      c.Param("listId"),
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) renameItem(c echo.Context) error {
	var body titleBody
	if err := bind(c, &body); err != nil {
		return err
	}
	err := s.app.ItemService.RenameItem(c.Request().Context(), itemservice.RenameItemRequest{
		BoardID: c.Param("id"),
		ListID:  c.Param("listId"),
		ItemID:  c.Param("itemId"),
		Title:   body.Title,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteItem(c echo.Context) error {
	err := s.app.ItemService.DeleteItem(c.Request().Context(), c.Param("id"), c.Param("listId"), c.Param("itemId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
