// Package api serves boards, lists and items over HTTP
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/madhankd/madhanboard-v2/internal/app"
)

// shutdownTimeout bounds how long in-flight requests get after the context ends
const shutdownTimeout = 5 * time.Second

// Server exposes the app's services as a JSON API
type Server struct {
	echo    *echo.Echo
	app     *app.App
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a server for a and registers every route
func NewServer(a *app.App) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handleHTTPError

	s := &Server{
		echo:    e,
		app:     a,
		metrics: NewMetrics(),
		logger:  a.Logger(),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(s.observe)

	s.register()
	return s
}

func (s *Server) register() {
	e := s.echo
	e.GET("/healthz", s.healthz)
	e.GET("/events", s.streamEvents)

	e.GET("/boards", s.listBoards)
	e.POST("/boards", s.createBoard)
	e.GET("/boards/:id", s.getBoard)
	e.DELETE("/boards/:id", s.deleteBoard)

	e.POST("/boards/:id/lists", s.addList)
	e.PUT("/boards/:id/lists/order", s.reorderLists)
	e.PATCH("/boards/:id/lists/:listId", s.renameList)
	e.PUT("/boards/:id/lists/:listId/position", s.moveList)
	e.DELETE("/boards/:id/lists/:listId", s.deleteList)

	e.POST("/boards/:id/lists/:listId/items", s.addItem)
	e.PATCH("/boards/:id/lists/:listId/items/:itemId", s.renameItem)
	e.DELETE("/boards/:id/lists/:listId/items/:itemId", s.deleteItem)
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the live server metrics
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("api stopped")
	return nil
}

// observe counts requests by status and logs each one at debug level
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		s.metrics.ObserveStatus(status)
		s.logger.Debug("http request",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start))
		return err
	}
}

type healthResponse struct {
	Status  string          `json:"status"`
	Metrics MetricsSnapshot `json:"metrics"`
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Metrics: s.metrics.GetSnapshot()})
}
