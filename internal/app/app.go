// Package app wires configuration, storage, the feed service and the
// HTTP handlers into one application object.
package app

import (
	"fmt"

	"github.com/allmba/ideas-portal/internal/cache"
	"github.com/allmba/ideas-portal/internal/common"
	"github.com/allmba/ideas-portal/internal/config"
	"github.com/allmba/ideas-portal/internal/feed"
	"github.com/allmba/ideas-portal/internal/handlers"
	"github.com/allmba/ideas-portal/internal/mcp"
	"github.com/allmba/ideas-portal/internal/storage/badger"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	DB          *badger.BadgerDB
	IdeaArchive *badger.IdeaArchive
	FeedService *feed.Service
	Refresher   *feed.Refresher

	// HTTP handlers
	PageHandler    *handlers.PageHandler
	IdeasHandler   *handlers.IdeasHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open idea archive: %w", err)
	}
	a.DB = db
	a.IdeaArchive = badger.NewIdeaArchive(db, logger)

	client, err := feed.NewClient(cfg.Feed.Origin, cfg.Feed.DeployPrefix, cfg.Feed.Timeout())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create feed client: %w", err)
	}

	a.FeedService = feed.NewService(
		client,
		cache.New(cfg.Cache.TTL(), cfg.Cache.MaxEntries),
		a.IdeaArchive,
		logger,
	)

	if cfg.Refresh.Schedule != "" {
		refresher, err := feed.NewRefresher(a.FeedService, cfg.Refresh.Schedule, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("invalid refresh schedule: %w", err)
		}
		a.Refresher = refresher
	}

	a.initHandlers()

	logger.Info().
		Str("feed_origin", cfg.Feed.Origin).
		Str("feed_base", client.BaseURL()).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers. Page handlers are
// optional: missing template scaffolding disables their routes with a
// logged error instead of failing startup.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	pages, err := handlers.NewPageHandler(a.Logger)
	if err != nil {
		a.Logger.Error().Str("error", err.Error()).Msg("page templates unavailable, page routes disabled")
	} else {
		a.PageHandler = pages

		ideasHandler, err := handlers.NewIdeasHandler(a.Logger, pages, a.FeedService)
		if err != nil {
			a.Logger.Error().Str("error", err.Error()).Msg("ideas template unavailable, ideas route disabled")
		} else {
			a.IdeasHandler = ideasHandler
		}
	}

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.FeedService, a.Logger)
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Start starts the background refresher when one is configured.
func (a *App) Start() {
	if a.Refresher != nil {
		a.Refresher.Start()
	}
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Refresher != nil {
		a.Refresher.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
