package cache

import (
	"context"
	"log/slog"
	"time"
)

// Pruner drops entries stored before cutoff. *SQLite implements it.
type Pruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunPruner removes entries older than maxAge every interval until ctx is
// done. Free-text search keys would otherwise accumulate for as long as the
// process runs.
func RunPruner(ctx context.Context, p Pruner, maxAge, interval time.Duration, logger *slog.Logger) {
	if maxAge <= 0 {
		maxAge = DefaultTTL
	}
	if interval <= 0 {
		interval = maxAge
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "cache")

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := p.Prune(ctx, now.Add(-maxAge))
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("prune failed", "err", err)
				}
				continue
			}
			if n > 0 {
				logger.Debug("pruned expired entries", "rows", n)
			}
		}
	}
}
