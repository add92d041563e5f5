package museum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"museumhub/pkg/models"
)

// Aggregator fans one logical operation out to every source and merges the
// answers. Sources are merged in the order they were given.
type Aggregator struct {
	sources     []Fetcher
	listLimit   int
	searchLimit int
	logger      *slog.Logger
}

type AggregatorOption func(*Aggregator)

func WithLimits(list, search int) AggregatorOption {
	return func(a *Aggregator) {
		if list > 0 {
			a.listLimit = list
		}
		if search > 0 {
			a.searchLimit = search
		}
	}
}

func WithLogger(logger *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAggregator(sources []Fetcher, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		sources:     sources,
		listLimit:   DefaultListLimit,
		searchLimit: DefaultSearchLimit,
		logger:      slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	a.logger = a.logger.With("component", "aggregator")
	return a
}

// Sources returns the configured fetchers in merge order.
func (a *Aggregator) Sources() []Fetcher {
	return a.sources
}

func (a *Aggregator) FetchAll(ctx context.Context) ([]models.Artwork, error) {
	return a.fanOut(ctx, "list", func(ctx context.Context, f Fetcher) ([]models.Artwork, error) {
		return f.List(ctx, 1, a.listLimit)
	})
}

func (a *Aggregator) Search(ctx context.Context, query string) ([]models.Artwork, error) {
	return a.fanOut(ctx, "search", func(ctx context.Context, f Fetcher) ([]models.Artwork, error) {
		return f.Search(ctx, query, 1, a.searchLimit)
	})
}

func (a *Aggregator) FilterByType(ctx context.Context, category Category) ([]models.Artwork, error) {
	return a.fanOut(ctx, "filter", func(ctx context.Context, f Fetcher) ([]models.Artwork, error) {
		return f.FilterByType(ctx, category, 1, a.listLimit)
	})
}

// FetchArtworkByID looks one artwork up in the named source. A source name
// that matches no fetcher is an *UnknownSourceError; a missing artwork is
// (nil, nil).
func (a *Aggregator) FetchArtworkByID(ctx context.Context, source, id string) (*models.Artwork, error) {
	src, ok := models.ParseMuseumSource(source)
	if ok {
		for _, f := range a.sources {
			if f.Source() == src {
				return f.FetchByID(ctx, id)
			}
		}
	}
	return nil, &UnknownSourceError{Source: source}
}

// fanOut runs op against every source concurrently. A failing source is
// logged and contributes nothing; only when all of them fail is an error
// returned.
func (a *Aggregator) fanOut(ctx context.Context, name string, op func(context.Context, Fetcher) ([]models.Artwork, error)) ([]models.Artwork, error) {
	results := make([][]models.Artwork, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, f := range a.sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%s: panic: %v", f.Source(), r)
				}
			}()
			results[i], errs[i] = op(ctx, f)
		}()
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		results[i] = nil
		a.logger.Warn("source failed, continuing without it", "op", name, "source", a.sources[i].Source(), "err", err)
	}
	if len(a.sources) > 0 && failed == len(a.sources) {
		return nil, fmt.Errorf("%s: %w", name, errors.Join(append([]error{ErrAllSourcesFailed}, errs...)...))
	}

	return Merge(results...), nil
}

// Merge concatenates lists in order and drops every artwork whose bare id
// was already seen.
//
// Ids are only unique per source, so a coincidental collision between two
// sources drops a valid record. Artwork.Key is the sound identity; callers
// of the merged listing currently depend on the bare-id behavior.
func Merge(lists ...[]models.Artwork) []models.Artwork {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make([]models.Artwork, 0, total)
	seen := make(map[string]struct{}, total)
	for _, l := range lists {
		for _, art := range l {
			if _, dup := seen[art.ID]; dup {
				continue
			}
			seen[art.ID] = struct{}{}
			out = append(out, art)
		}
	}
	return out
}
