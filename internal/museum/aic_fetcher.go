package museum

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"museumhub/internal/imagecheck"
	"museumhub/pkg/models"
)

var (
	aicListFields = strings.Join([]string{
		"id", "title", "artist_display", "image_id", "date_display", "thumbnail",
		"category_titles", "department_title", "is_public_domain",
	}, ",")
	aicDetailFields = strings.Join([]string{
		"id", "title", "artist_display", "image_id", "date_display", "thumbnail",
		"medium_display", "description", "place_of_origin", "style_titles",
		"classification_title", "exhibition_history", "department_title", "is_public_domain",
	}, ",")
	aicSearchFields = strings.Join([]string{
		"id", "title", "artist_display", "image_id", "date_display", "thumbnail",
		"medium_display", "category_titles", "is_public_domain",
	}, ",")
	aicFilterFields = strings.Join([]string{
		"id", "title", "artist_display", "image_id", "thumbnail", "category_titles",
		"artwork_type_title", "medium_display", "date_display", "is_public_domain",
	}, ",")
)

// AIC fetches from the Art Institute of Chicago. List hits are resolved one
// by one through the detail endpoint; search and filter hits are adapted
// directly from the list payload.
type AIC struct {
	client apiClient
	opts   Options
	logger *slog.Logger
}

func NewAIC(opts Options) *AIC {
	opts = opts.withDefaults(aicBaseURL)
	return &AIC{
		client: apiClient{source: string(models.SourceAIC), baseURL: strings.TrimRight(opts.BaseURL, "/"), http: opts.Client},
		opts:   opts,
		logger: opts.Logger.With("component", "museum", "source", models.SourceAIC),
	}
}

func (s *AIC) Source() models.MuseumSource { return models.SourceAIC }

func (s *AIC) List(ctx context.Context, page, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	batch := s.opts.BatchSize

	return collect(ctx, s.logger, page, limit, batch, s.opts.MaxBatches, func(ctx context.Context, n int) (int, []models.Artwork, error) {
		q := url.Values{}
		q.Set("query[bool][must][][term][is_public_domain]", "true")
		q.Set("query[bool][must][][exists][field]", "image_id")
		q.Set("fields", aicListFields)
		q.Set("limit", strconv.Itoa(batch))
		q.Set("offset", strconv.Itoa((n-1)*batch))

		var resp AICListResponse
		if err := s.client.getJSON(ctx, "/search", q, &resp); err != nil {
			return 0, nil, err
		}

		candidates := make([]AICRecord, 0, len(resp.Data))
		for _, r := range resp.Data {
			if r.usable() {
				candidates = append(candidates, r)
			}
		}

		valid := resolveAll(ctx, s.opts.Concurrency, candidates, func(ctx context.Context, r AICRecord) *models.Artwork {
			a, err := s.FetchByID(ctx, strconv.Itoa(r.ID))
			if err != nil {
				return nil
			}
			return a
		})
		return len(resp.Data), valid, nil
	})
}

func (s *AIC) Search(ctx context.Context, query string, page, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}
	batch := s.opts.searchBatch(limit)

	return collect(ctx, s.logger, page, limit, batch, s.opts.MaxBatches, func(ctx context.Context, n int) (int, []models.Artwork, error) {
		q := url.Values{}
		q.Set("q", query)
		q.Set("query[term][is_public_domain]", "true")
		q.Set("fields", aicSearchFields)
		q.Set("limit", strconv.Itoa(batch))
		q.Set("offset", strconv.Itoa((n-1)*batch))

		var resp AICListResponse
		if err := s.client.getJSON(ctx, "/search", q, &resp); err != nil {
			return 0, nil, err
		}
		return len(resp.Data), s.validateListed(ctx, resp.Data), nil
	})
}

// FilterByType restricts results to one artwork type. CategoryAll carries no
// constraint and is served by List.
func (s *AIC) FilterByType(ctx context.Context, category Category, page, limit int) ([]models.Artwork, error) {
	term, ok := aicCategoryTerms[category]
	if !ok {
		return nil, fmt.Errorf("aic: unknown category %q", category)
	}
	if term == "" {
		return s.List(ctx, page, limit)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	batch := s.opts.BatchSize

	return collect(ctx, s.logger, page, limit, batch, s.opts.MaxBatches, func(ctx context.Context, n int) (int, []models.Artwork, error) {
		q := url.Values{}
		q.Set("query[bool][must][][term][artwork_type_title.keyword]", term)
		q.Set("query[bool][must][][term][is_public_domain]", "true")
		q.Set("query[bool][must][][exists][field]", "image_id")
		q.Set("fields", aicFilterFields)
		q.Set("limit", strconv.Itoa(batch))
		q.Set("offset", strconv.Itoa((n-1)*batch))

		var resp AICListResponse
		if err := s.client.getJSON(ctx, "/search", q, &resp); err != nil {
			return 0, nil, err
		}
		return len(resp.Data), s.validateListed(ctx, resp.Data), nil
	})
}

// validateListed adapts the usable hits of one page and keeps those whose
// image loads.
func (s *AIC) validateListed(ctx context.Context, records []AICRecord) []models.Artwork {
	candidates := make([]models.Artwork, 0, len(records))
	for _, r := range records {
		if r.usable() {
			candidates = append(candidates, adaptAICListed(r))
		}
	}
	return imagecheck.Filter(ctx, s.opts.Checker, candidates, func(a models.Artwork) string {
		return a.Image.ImageURL
	}, s.opts.Concurrency)
}

func (s *AIC) FetchByID(ctx context.Context, id string) (*models.Artwork, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	rec, err := lookupRecord(ctx, s.opts.Retries, func(ctx context.Context) (*AICRecord, error) {
		q := url.Values{}
		q.Set("fields", aicDetailFields)
		var resp AICDetailResponse
		if err := s.client.getJSON(ctx, "/"+url.PathEscape(id), q, &resp); err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("artwork lookup failed, skipping", "id", id, "err", err)
		return nil, nil
	}
	if rec == nil || !rec.usable() {
		return nil, nil
	}

	a := AdaptAIC(*rec)
	if !s.opts.Checker.Exists(ctx, a.Image.ImageURL) {
		return nil, nil
	}
	return &a, nil
}

func (s *AIC) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("limit", "1")
	q.Set("fields", "id")
	var resp AICListResponse
	return s.client.getJSON(ctx, "", q, &resp)
}
