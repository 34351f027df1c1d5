package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// streamEvents relays board change events as server-sent events until the
// client goes away. ?board= limits the stream to one board.
func (s *Server) streamEvents(c echo.Context) error {
	publisher := s.app.Events()
	if publisher == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "events are not available for this store"})
	}
	boardFilter := c.QueryParam("board")

	ctx := c.Request().Context()
	ch, err := publisher.Listen(ctx)
	if err != nil {
		return s.writeError(c, err)
	}

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "stream unsupported"})
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	flusher.Flush()

	s.metrics.ConnectedClients.Add(1)
	defer s.metrics.ConnectedClients.Add(-1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if boardFilter != "" && event.BoardID != boardFilter {
				continue
			}
			data, err := json.Marshal(event)
			if err != nil {
				s.logger.Warn("failed to encode event", "board_id", event.BoardID, "error", err)
				continue
			}
			if _, err := c.Response().Write([]byte("event: " + string(event.Type) + "\ndata: ")); err != nil {
				return nil
			}
			if _, err := c.Response().Write(data); err != nil {
				return nil
			}
			if _, err := c.Response().Write([]byte("\n\n")); err != nil {
				return nil
			}
			flusher.Flush()
			s.metrics.IncEventsSent()
		}
	}
}
