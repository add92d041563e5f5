package museum

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"museumhub/pkg/models"
)

// DefaultMetListCategory is the query the Met list runs when no category is
// given; the Met search endpoint has no "everything" query.
const DefaultMetListCategory = CategoryPaintings

// Met fetches from The Metropolitan Museum of Art. Every operation first
// resolves a list of object ids via /search and then walks that list in
// batches, fetching each object individually.
type Met struct {
	client apiClient
	opts   Options
	logger *slog.Logger
}

func NewMet(opts Options) *Met {
	opts = opts.withDefaults(metBaseURL)
	return &Met{
		client: apiClient{source: string(models.SourceMet), baseURL: strings.TrimRight(opts.BaseURL, "/"), http: opts.Client},
		opts:   opts,
		logger: opts.Logger.With("component", "museum", "source", models.SourceMet),
	}
}

func (s *Met) Source() models.MuseumSource { return models.SourceMet }

func (s *Met) List(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.walk(ctx, metCategoryTerms[DefaultMetListCategory], page, limit, s.opts.BatchSize, "")
}

func (s *Met) Search(ctx context.Context, query string, page, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}
	return s.walk(ctx, query, page, limit, s.opts.searchBatch(limit), "")
}

// FilterByType searches for the category term and additionally requires the
// object's classification to contain it. CategoryAll is served by List.
func (s *Met) FilterByType(ctx context.Context, category Category, page, limit int) ([]models.Artwork, error) {
	term, ok := metCategoryTerms[category]
	if !ok {
		return nil, fmt.Errorf("met: unknown category %q", category)
	}
	if term == "" {
		return s.List(ctx, page, limit)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.walk(ctx, term, page, limit, s.opts.BatchSize, term)
}

// walk runs one id search and collects validated objects from it. When
// classification is non-empty, objects must be classified as it.
func (s *Met) walk(ctx context.Context, query string, page, limit, batch int, classification string) ([]models.Artwork, error) {
	if ctx.Err() != nil {
		return []models.Artwork{}, nil
	}

	ids, err := s.searchIDs(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return []models.Artwork{}, nil
		}
		return nil, err
	}

	return collect(ctx, s.logger, page, limit, batch, s.opts.MaxBatches, func(ctx context.Context, n int) (int, []models.Artwork, error) {
		start := (n - 1) * batch
		if start >= len(ids) {
			return 0, nil, nil
		}
		end := min(start+batch, len(ids))
		chunk := ids[start:end]

		valid := resolveAll(ctx, s.opts.Concurrency, chunk, func(ctx context.Context, id int) *models.Artwork {
			return s.resolve(ctx, strconv.Itoa(id), classification)
		})
		return len(chunk), valid, nil
	})
}

func (s *Met) searchIDs(ctx context.Context, query string) ([]int, error) {
	q := url.Values{}
	q.Set("hasImages", "true")
	q.Set("q", query)

	var resp MetSearchResponse
	if err := s.client.getJSON(ctx, "/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.ObjectIDs, nil
}

func (s *Met) FetchByID(ctx context.Context, id string) (*models.Artwork, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	a := s.resolve(ctx, id, "")
	if a == nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return a, nil
}

// resolve fetches, validates, adapts and image-checks one object. Every
// failure is an exclusion.
func (s *Met) resolve(ctx context.Context, id, classification string) *models.Artwork {
	rec, err := lookupRecord(ctx, s.opts.Retries, func(ctx context.Context) (*MetRecord, error) {
		var r MetRecord
		if err := s.client.getJSON(ctx, "/objects/"+url.PathEscape(id), nil, &r); err != nil {
			return nil, err
		}
		if r.Message == metInvalidObject {
			return nil, nil
		}
		return &r, nil
	})
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("object lookup failed, skipping", "id", id, "err", err)
		}
		return nil
	}
	if rec == nil || !rec.usable() {
		return nil
	}
	if classification != "" && !rec.classifiedAs(classification) {
		return nil
	}

	a := AdaptMet(*rec)
	if !s.opts.Checker.Exists(ctx, a.Image.ImageURL) {
		return nil
	}
	return &a
}

func (s *Met) Ping(ctx context.Context) error {
	var out struct {
		Departments []struct {
			DepartmentID int    `json:"departmentId"`
			DisplayName  string `json:"displayName"`
		} `json:"departments"`
	}
	return s.client.getJSON(ctx, "/departments", nil, &out)
}
