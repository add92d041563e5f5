// Package app wires the shared pieces every binary needs from one Config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"museumhub/internal/artwork"
	"museumhub/internal/cache"
	"museumhub/internal/health"
	"museumhub/internal/imagecheck"
	"museumhub/internal/museum"
	"museumhub/pkg/database"
	"museumhub/pkg/utils"
)

type App struct {
	Config     utils.Config
	Logger     *slog.Logger
	DB         *sql.DB
	Cache      *cache.Cache
	CacheStore *cache.SQLite
	Sources    []museum.Fetcher
	Aggregator *museum.Aggregator
	Artworks   *artwork.Service
}

// New opens and migrates the database and builds the fetch pipeline.
// The caller owns Close.
func New(cfg utils.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	store := cache.NewSQLite(db)
	c := cache.New(store, cfg.Cache.TTL, logger)

	checker := imagecheck.NewMemo(imagecheck.NewHTTPChecker(nil, logger), cfg.Cache.ImageTTL)
	sources := museum.NewSources(cfg.Museum, checker, logger)
	agg := museum.NewAggregator(sources,
		museum.WithLimits(cfg.Museum.ListLimit, cfg.Museum.SearchLimit),
		museum.WithLogger(logger),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      c,
		CacheStore: store,
		Sources:    sources,
		Aggregator: agg,
		Artworks:   artwork.NewService(agg, c, logger),
	}, nil
}

// Monitor builds a health monitor over the configured sources.
func (a *App) Monitor() *health.Monitor {
	pingers := make([]health.Pinger, len(a.Sources))
	for i, s := range a.Sources {
		pingers[i] = s
	}
	return health.NewMonitor(pingers, a.Config.Museum.ProbeInterval, a.Config.Museum.RequestTimeout, a.Logger)
}

// RunPrune drops expired response cache rows every cache TTL until ctx is
// done.
func (a *App) RunPrune(ctx context.Context) {
	cache.RunPruner(ctx, a.CacheStore, a.Cache.TTL(), a.Cache.TTL(), a.Logger)
}

func (a *App) Close() error {
	return a.DB.Close()
}

// PruneBefore is the cutoff for cache rows no reader would accept anymore.
func (a *App) PruneBefore(now time.Time) time.Time {
	return now.Add(-a.Cache.TTL())
}
