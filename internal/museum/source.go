// Package museum talks to the museum collection APIs: each source adapts its
// own response shape into models.Artwork, applies its validation and retry
// policy, and the Aggregator merges the sources into one listing.
package museum

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"museumhub/internal/imagecheck"
	"museumhub/pkg/models"
)

// Fetcher is implemented by each museum source. Every returned artwork has
// passed the source's validation and the image check.
type Fetcher interface {
	Source() models.MuseumSource
	List(ctx context.Context, page, limit int) ([]models.Artwork, error)
	Search(ctx context.Context, query string, page, limit int) ([]models.Artwork, error)
	FilterByType(ctx context.Context, category Category, page, limit int) ([]models.Artwork, error)
	// FetchByID returns (nil, nil) when the record is missing, not public
	// domain, imageless, or could not be fetched within the retry budget.
	FetchByID(ctx context.Context, id string) (*models.Artwork, error)
	// Ping checks that the API answers at all.
	Ping(ctx context.Context) error
}

const (
	DefaultTimeout     = 8 * time.Second
	DefaultRetries     = 3
	DefaultBatchSize   = 48
	DefaultMaxPageSize = 100
	DefaultMaxBatches  = 10
	DefaultListLimit   = 32
	DefaultSearchLimit = 20
)

// Options configures a source. Zero values fall back to the defaults above.
type Options struct {
	BaseURL string
	Client  *http.Client // built from Timeout when nil
	Timeout time.Duration
	// Retries after the first attempt on single-record lookups;
	// 0 means DefaultRetries, negative disables retrying.
	Retries     int
	Concurrency int
	BatchSize   int
	MaxPageSize int
	// MaxBatches caps how many source pages one call may walk while
	// trying to fill its limit.
	MaxBatches int
	Checker    imagecheck.Checker
	Logger     *slog.Logger
}

func (o Options) withDefaults(baseURL string) Options {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	switch {
	case o.Retries == 0:
		o.Retries = DefaultRetries
	case o.Retries < 0:
		o.Retries = 0
	}
	if o.Concurrency <= 0 {
		o.Concurrency = imagecheck.DefaultConcurrency
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = DefaultMaxPageSize
	}
	if o.MaxBatches <= 0 {
		o.MaxBatches = DefaultMaxBatches
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Checker == nil {
		o.Checker = imagecheck.NewHTTPChecker(nil, o.Logger)
	}
	return o
}

// searchBatch is the page size used for keyword search: big enough to cover
// limit after filtering, but never above what the API accepts.
func (o Options) searchBatch(limit int) int {
	batch := o.BatchSize
	if limit > batch {
		batch = limit
	}
	if batch > o.MaxPageSize {
		batch = o.MaxPageSize
	}
	return batch
}

// batchFunc fetches source page n (1-based). raw is how many records the page
// held before validation; valid keeps source order.
type batchFunc func(ctx context.Context, n int) (raw int, valid []models.Artwork, err error)

// collect walks source pages from page on, accumulating validated artworks
// until limit is reached or the source runs dry (a page shorter than
// batchSize). Cancellation yields an empty result, not an error.
func collect(ctx context.Context, logger *slog.Logger, page, limit, batchSize, maxBatches int, next batchFunc) ([]models.Artwork, error) {
	if page < 1 {
		page = 1
	}
	out := make([]models.Artwork, 0, limit)

	for n := page; len(out) < limit && n < page+maxBatches; n++ {
		if ctx.Err() != nil {
			return []models.Artwork{}, nil
		}

		raw, valid, err := next(ctx, n)
		if err != nil {
			if ctx.Err() != nil {
				return []models.Artwork{}, nil
			}
			if len(out) == 0 {
				return nil, err
			}
			logger.Warn("batch failed, keeping earlier batches", "page", n, "err", err)
			break
		}

		out = append(out, valid...)
		if raw < batchSize {
			break
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// resolveAll runs fn over items with at most concurrency calls in flight and
// returns the non-nil results in input order.
func resolveAll[T any](ctx context.Context, concurrency int, items []T, fn func(context.Context, T) *models.Artwork) []models.Artwork {
	if len(items) == 0 {
		return nil
	}
	results := make([]*models.Artwork, len(items))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range items {
		g.Go(func() error {
			results[i] = fn(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.Artwork, 0, len(items))
	for _, a := range results {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
