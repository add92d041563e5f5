// Package exhibition keeps user-curated exhibitions and the list of
// selected artworks that are not yet in any exhibition.
package exhibition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"museumhub/pkg/models"
)

var (
	ErrEmptyTitle         = errors.New("exhibition title is required")
	ErrExhibitionNotFound = errors.New("exhibition not found")
	ErrDuplicateArtwork   = errors.New("artwork already in exhibition")
	ErrInvalidArtwork     = errors.New("artwork needs an id and a known museum source")
)

// State is everything the store persists.
type State struct {
	Exhibitions []models.Exhibition        `json:"exhibitions"`
	Selected    []models.ExhibitionArtwork `json:"selectedArtworks"`
}

func (s State) clone() State {
	out := State{
		Exhibitions: make([]models.Exhibition, len(s.Exhibitions)),
		Selected:    slices.Clone(s.Selected),
	}
	for i, e := range s.Exhibitions {
		e.Artworks = slices.Clone(e.Artworks)
		out.Exhibitions[i] = e
	}
	return out
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Exhibitions, func(e models.Exhibition) bool { return e.ID == id })
}

// Persister loads and saves the whole state.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// Notifier receives change events. *events.Hub implements it.
type Notifier interface {
	BroadcastJSON(v any)
}

const (
	EventExhibitionCreated = "exhibition.created"
	EventExhibitionDeleted = "exhibition.deleted"
	EventArtworkAdded      = "artwork.added"
	EventArtworkRemoved    = "artwork.removed"
)

type Event struct {
	Type         string              `json:"type"`
	ExhibitionID string              `json:"exhibitionId,omitempty"`
	Title        string              `json:"title,omitempty"`
	MuseumSource models.MuseumSource `json:"museumSource,omitempty"`
	ArtworkID    string              `json:"artworkId,omitempty"`
	At           time.Time           `json:"at"`
}

type Option func(*Store)

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is safe for concurrent use. Each mutation is persisted before it
// becomes visible; a failed save leaves the store unchanged.
type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewStore(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: p, logger: slog.Default(), now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "exhibition")

	if p != nil {
		st, err := p.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load exhibitions: %w", err)
		}
		s.state = st
	}
	return s, nil
}

func (s *Store) List() []models.Exhibition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().Exhibitions
}

// Get returns the exhibition with id or slug, or nil.
func (s *Store) Get(idOrSlug string) *models.Exhibition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.state.Exhibitions {
		if e.ID == idOrSlug || e.Slug == idOrSlug {
			e.Artworks = slices.Clone(e.Artworks)
			return &e
		}
	}
	return nil
}

func (s *Store) Selected() []models.ExhibitionArtwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Selected)
}

func (s *Store) CreateExhibition(ctx context.Context, title, description string) (models.Exhibition, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Exhibition{}, ErrEmptyTitle
	}

	var created models.Exhibition
	err := s.mutate(ctx, func(st *State) (Event, error) {
		slugs := make([]string, len(st.Exhibitions))
		for i, e := range st.Exhibitions {
			slugs[i] = e.Slug
		}
		now := s.now()
		created = models.Exhibition{
			ID:          uuid.NewString(),
			Title:       title,
			Slug:        GenerateUniqueSlug(title, slugs),
			Description: strings.TrimSpace(description),
			Artworks:    []models.ExhibitionArtwork{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		st.Exhibitions = append(st.Exhibitions, created)
		return Event{Type: EventExhibitionCreated, ExhibitionID: created.ID, Title: created.Title}, nil
	})
	return created, err
}

func (s *Store) RemoveExhibition(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) (Event, error) {
		i := st.index(id)
		if i < 0 {
			return Event{}, ErrExhibitionNotFound
		}
		title := st.Exhibitions[i].Title
		st.Exhibitions = slices.Delete(st.Exhibitions, i, i+1)
		return Event{Type: EventExhibitionDeleted, ExhibitionID: id, Title: title}, nil
	})
}

// AddArtwork stores art unmodified, stamped with the time it was added. An
// empty exhibitionID adds it to the selected list instead.
func (s *Store) AddArtwork(ctx context.Context, art models.Artwork, note, exhibitionID string) (models.ExhibitionArtwork, error) {
	if strings.TrimSpace(art.ID) == "" {
		return models.ExhibitionArtwork{}, ErrInvalidArtwork
	}
	if _, ok := models.ParseMuseumSource(string(art.MuseumSource)); !ok {
		return models.ExhibitionArtwork{}, ErrInvalidArtwork
	}

	var added models.ExhibitionArtwork
	err := s.mutate(ctx, func(st *State) (Event, error) {
		now := s.now()
		added = models.ExhibitionArtwork{Artwork: art, Note: strings.TrimSpace(note), AddedAt: now}

		if exhibitionID == "" {
			if containsArtwork(st.Selected, art) {
				return Event{}, ErrDuplicateArtwork
			}
			st.Selected = append(st.Selected, added)
			return Event{Type: EventArtworkAdded, MuseumSource: art.MuseumSource, ArtworkID: art.ID}, nil
		}

		i := st.index(exhibitionID)
		if i < 0 {
			return Event{}, ErrExhibitionNotFound
		}
		ex := &st.Exhibitions[i]
		if containsArtwork(ex.Artworks, art) {
			return Event{}, ErrDuplicateArtwork
		}
		ex.Artworks = append(ex.Artworks, added)
		ex.UpdatedAt = now
		return Event{Type: EventArtworkAdded, ExhibitionID: ex.ID, MuseumSource: art.MuseumSource, ArtworkID: art.ID}, nil
	})
	return added, err
}

// RemoveArtwork removes the artwork from the selected list and from every
// exhibition, and reports how many entries went.
func (s *Store) RemoveArtwork(ctx context.Context, source models.MuseumSource, id string) (int, error) {
	removed := 0
	err := s.mutate(ctx, func(st *State) (Event, error) {
		match := func(a models.ExhibitionArtwork) bool {
			return a.ID == id && a.MuseumSource == source
		}
		now := s.now()

		before := len(st.Selected)
		st.Selected = slices.DeleteFunc(st.Selected, match)
		removed += before - len(st.Selected)

		for i := range st.Exhibitions {
			ex := &st.Exhibitions[i]
			before := len(ex.Artworks)
			ex.Artworks = slices.DeleteFunc(ex.Artworks, match)
			if n := before - len(ex.Artworks); n > 0 {
				removed += n
				ex.UpdatedAt = now
			}
		}
		if removed == 0 {
			return Event{}, nil
		}
		return Event{Type: EventArtworkRemoved, MuseumSource: source, ArtworkID: id}, nil
	})
	return removed, err
}

// mutate applies fn to a copy of the state, persists the copy and swaps it
// in. An empty event type means nothing changed.
func (s *Store) mutate(ctx context.Context, fn func(*State) (Event, error)) error {
	s.mu.Lock()
	next := s.state.clone()
	ev, err := fn(&next)
	if err != nil || ev.Type == "" {
		s.mu.Unlock()
		return err
	}
	if s.persister != nil {
		if err := s.persister.Save(ctx, next); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("save exhibitions: %w", err)
		}
	}
	s.state = next
	s.mu.Unlock()

	ev.At = s.now()
	s.logger.Info("exhibitions changed", "event", ev.Type, "exhibition", ev.ExhibitionID, "artwork", ev.ArtworkID)
	if s.notifier != nil {
		s.notifier.BroadcastJSON(ev)
	}
	return nil
}

func containsArtwork(list []models.ExhibitionArtwork, art models.Artwork) bool {
	return slices.ContainsFunc(list, func(a models.ExhibitionArtwork) bool {
		return a.Key() == art.Key()
	})
}
