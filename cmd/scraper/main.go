package main

import (
	"context"
	"flag"
	"log"
	"time"

	"museumhub/internal/app"
	"museumhub/pkg/utils"
)

// scraper pre-fills the response cache for the unfiltered listing and every
// category, then prunes rows older than the cache TTL.
func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	pruneOnly := flag.Bool("prune-only", false, "only drop expired cache rows")
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	if !*pruneOnly {
		counts := a.Artworks.Warm(ctx)
		for key, n := range counts {
			logger.Info("warmed", "key", key, "artworks", n)
		}
		logger.Info("cache warm-up finished", "keys", len(counts))
	}

	n, err := a.CacheStore.Prune(ctx, a.PruneBefore(time.Now()))
	if err != nil {
		log.Fatalf("prune failed: %v", err)
	}
	logger.Info("pruned expired cache rows", "rows", n, "db", cfg.DBPath)
}
