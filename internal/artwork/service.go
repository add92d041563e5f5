// Package artwork serves the aggregated artwork listing: it picks the
// aggregate operation for a query, caches the result, and sorts and pages it.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"museumhub/internal/cache"
	"museumhub/internal/listing"
	"museumhub/internal/museum"
	"museumhub/pkg/models"
)

var (
	ErrInvalidCategory = errors.New("invalid artwork type")
	ErrInvalidSort     = errors.New("invalid sort order")
)

// Aggregate is the slice of *museum.Aggregator the service needs.
type Aggregate interface {
	FetchAll(ctx context.Context) ([]models.Artwork, error)
	Search(ctx context.Context, query string) ([]models.Artwork, error)
	FilterByType(ctx context.Context, category museum.Category) ([]models.Artwork, error)
	FetchArtworkByID(ctx context.Context, source, id string) (*models.Artwork, error)
}

type ListQuery struct {
	Query   string
	Type    string
	Sort    string
	Page    int
	PerPage int
}

type ListResult struct {
	Items []models.Artwork `json:"items"`
	listing.Page
}

type Service struct {
	agg    Aggregate
	cache  *cache.Cache // nil disables caching
	logger *slog.Logger
}

func NewService(agg Aggregate, c *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{agg: agg, cache: c, logger: logger.With("component", "artwork")}
}

// Cache keys. They are part of the on-disk cache, so changing them orphans
// stored entries until they expire.
func allKey() string                      { return "artworks:all" }
func searchKey(q string) string           { return "search:" + strings.ToLower(q) }
func filterKey(c museum.Category) string  { return "filter:" + string(c) }
func artworkKey(source, id string) string { return "artwork:" + source + ":" + id }

// Artworks returns the full merged list for q: a keyword search when Query
// is set, otherwise a category filter, otherwise everything.
func (s *Service) Artworks(ctx context.Context, q ListQuery) ([]models.Artwork, error) {
	if query := strings.TrimSpace(q.Query); query != "" {
		return s.cached(ctx, searchKey(query), func(ctx context.Context) ([]models.Artwork, error) {
			return s.agg.Search(ctx, query)
		})
	}

	category, ok := museum.ParseCategory(q.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, q.Type)
	}
	if category == museum.CategoryAll {
		return s.FetchAll(ctx)
	}
	return s.cached(ctx, filterKey(category), func(ctx context.Context) ([]models.Artwork, error) {
		return s.agg.FilterByType(ctx, category)
	})
}

func (s *Service) FetchAll(ctx context.Context) ([]models.Artwork, error) {
	return s.cached(ctx, allKey(), s.agg.FetchAll)
}

// List is Artworks followed by sorting and pagination.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	order, ok := listing.ParseOrder(q.Sort)
	if !ok {
		return ListResult{}, fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}

	all, err := s.Artworks(ctx, q)
	if err != nil {
		return ListResult{}, err
	}

	items, page := listing.Paginate(listing.Sort(all, order), q.Page, q.PerPage)
	return ListResult{Items: items, Page: page}, nil
}

// errNotFound keeps missing artworks out of the cache.
var errNotFound = errors.New("artwork not found")

// Get returns one artwork, or (nil, nil) when the source has no usable
// record for id.
func (s *Service) Get(ctx context.Context, source, id string) (*models.Artwork, error) {
	src, ok := models.ParseMuseumSource(source)
	if !ok {
		return nil, &museum.UnknownSourceError{Source: source}
	}

	a, err := s.cachedOne(ctx, artworkKey(string(src), id), func(ctx context.Context) (*models.Artwork, error) {
		a, err := s.agg.FetchArtworkByID(ctx, string(src), id)
		if err == nil && a == nil {
			return nil, errNotFound
		}
		return a, err
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return a, err
}

// Warm fills the cache for the unfiltered list and every category. It
// reports how many artworks each key holds; failed keys are logged and
// skipped.
func (s *Service) Warm(ctx context.Context) map[string]int {
	counts := map[string]int{}
	for _, c := range museum.Categories() {
		if ctx.Err() != nil {
			break
		}
		items, err := s.Artworks(ctx, ListQuery{Type: string(c)})
		if err != nil {
			s.logger.Warn("warm-up failed", "type", c, "err", err)
			continue
		}
		counts[string(c)] = len(items)
	}
	return counts
}

func (s *Service) cached(ctx context.Context, key string, fetch func(context.Context) ([]models.Artwork, error)) ([]models.Artwork, error) {
	if s.cache == nil {
		return fetch(ctx)
	}
	return cache.Fetch(ctx, s.cache, key, fetch)
}

func (s *Service) cachedOne(ctx context.Context, key string, fetch func(context.Context) (*models.Artwork, error)) (*models.Artwork, error) {
	if s.cache == nil {
		return fetch(ctx)
	}
	return cache.Fetch(ctx, s.cache, key, fetch)
}
