package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/madhankd/madhanboard-v2/internal/config"
	"github.com/madhankd/madhanboard-v2/internal/database"
	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/mirror"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
	itemservice "github.com/madhankd/madhanboard-v2/internal/services/item"
	listservice "github.com/madhankd/madhanboard-v2/internal/services/list"
	"github.com/madhankd/madhanboard-v2/internal/state"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct document store access)
	repo database.DataStore

	// Event system for change notifications
	eventClient events.EventPublisher

	logger *slog.Logger

	// Service layer (business logic)
	BoardService boardservice.Service
	ListService  listservice.Service
	ItemService  itemservice.Service

	// State shared by the CLI and HTTP collaborators
	State *state.Store

	// Resources owned by the app, closed in reverse order
	closers []io.Closer
}

// New creates a new App with all services initialized on repo.
// Resources passed in through options are not closed by the app.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := buildConfig(opts)

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		repo:         repo,
		eventClient:  cfg.eventClient,
		logger:       logger,
		BoardService: boardservice.NewService(repo, cfg.eventClient),
		ListService:  listservice.NewService(repo, cfg.eventClient),
		ItemService:  itemservice.NewService(repo, cfg.eventClient),
	}

	var snapshots state.SnapshotMirror
	if !cfg.noMirror {
		snapshots = cfg.mirror
	}
	a.State = state.New(a.BoardService, a.ListService, a.ItemService, snapshots)
	return a
}

// Open connects to the configured document store, event channel and local
// mirror, and returns the app owning them.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	appCfg := buildConfig(opts)

	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}

	store, publisher, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	closers = append(closers, store)
	if publisher != nil {
		closers = append(closers, publisher)
		if appCfg.eventClient == nil {
			opts = append(opts, WithEventPublisher(publisher))
		}
	}

	if appCfg.mirror == nil && !appCfg.noMirror {
		path := cfg.Mirror.Path
		if path == "" {
			if path, err = mirror.DefaultPath(); err != nil {
				cleanup()
				return nil, fmt.Errorf("failed to resolve mirror path: %w", err)
			}
		}
		m, err := mirror.Open(ctx, path)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, m)
		opts = append(opts, WithMirror(m))
	}

	a := New(database.NewRepository(store), opts...)
	a.closers = closers
	a.logger.Info("app opened", "driver", cfg.Store.Driver, "events", publisher != nil)
	return a, nil
}

// openStore connects the configured driver. Only the Redis driver carries an
// event channel; with Azure Tables events are disabled.
func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, events.EventPublisher, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		store := docstore.NewRedisStoreFromClient(rdb, cfg.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, events.NewRedisPublisher(rdb, cfg.KeyPrefix), nil
	case config.DriverAzure:
		store, err := docstore.NewTableStore(ctx, cfg.AzureConnectionString, cfg.AzureTable)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Repo returns the underlying repository for direct document store access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Logger returns the app logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Events returns the event publisher, or nil when events are disabled
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close releases every resource the app opened
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
