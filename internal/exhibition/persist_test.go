package exhibition

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"museumhub/pkg/database"
	"museumhub/pkg/models"
)

func newSQLPersister(t *testing.T) *SQLPersister {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "exhibitions.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLPersister(db)
}

func TestPersisters_RoundTrip(t *testing.T) {
	persisters := map[string]func(t *testing.T) Persister{
		"file": func(t *testing.T) Persister {
			return NewFilePersister(filepath.Join(t.TempDir(), "nested", "exhibitions.json"))
		},
		"sqlite": func(t *testing.T) Persister { return newSQLPersister(t) },
	}

	for name, mk := range persisters {
		t.Run(name, func(t *testing.T) {
			p := mk(t)
			ctx := context.Background()

			s, _ := newTestStore(t, p)
			first, err := s.CreateExhibition(ctx, "Gardens", "Outdoor scenes")
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			second, err := s.CreateExhibition(ctx, "Portraits", "")
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if _, err := s.AddArtwork(ctx, artwork(models.SourceAIC, "14598"), "first", first.ID); err != nil {
				t.Fatalf("add: %v", err)
			}
			if _, err := s.AddArtwork(ctx, artwork(models.SourceMet, "436535"), "second", first.ID); err != nil {
				t.Fatalf("add: %v", err)
			}
			if _, err := s.AddArtwork(ctx, artwork(models.SourceMet, "11417"), "", ""); err != nil {
				t.Fatalf("add: %v", err)
			}

			reloaded, _ := newTestStore(t, p)
			list := reloaded.List()
			if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
				t.Fatalf("exhibitions not restored in order: %+v", list)
			}
			got := list[0]
			if got.Slug != "gardens" || got.Description != "Outdoor scenes" || !got.CreatedAt.Equal(first.CreatedAt) {
				t.Fatalf("exhibition fields lost: %+v", got)
			}
			if len(got.Artworks) != 2 || got.Artworks[0].ID != "14598" || got.Artworks[1].MuseumSource != models.SourceMet {
				t.Fatalf("artworks not restored in order: %+v", got.Artworks)
			}
			if got.Artworks[0].Note != "first" || got.Artworks[0].AddedAt.IsZero() {
				t.Fatalf("curation metadata lost: %+v", got.Artworks[0])
			}
			if got.Artworks[0].Styles.String() != "Painting, Impressionism" || got.Artworks[0].Image.ImageURL != "https://img/14598.jpg" {
				t.Fatalf("canonical artwork changed: %+v", got.Artworks[0].Artwork)
			}
			if len(list[1].Artworks) != 0 {
				t.Fatalf("empty exhibition gained artworks")
			}
			if sel := reloaded.Selected(); len(sel) != 1 || sel[0].ID != "11417" {
				t.Fatalf("selected list not restored: %+v", sel)
			}

			if err := reloaded.RemoveExhibition(ctx, first.ID); err != nil {
				t.Fatalf("remove: %v", err)
			}
			again, _ := newTestStore(t, p)
			if len(again.List()) != 1 || len(again.Selected()) != 1 {
				t.Fatalf("removal not persisted: %+v", again.List())
			}
		})
	}
}

func TestFilePersister_MissingFileIsEmpty(t *testing.T) {
	p := NewFilePersister(filepath.Join(t.TempDir(), "none.json"))
	st, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Exhibitions) != 0 || len(st.Selected) != 0 {
		t.Fatalf("want empty state, got %+v", st)
	}
}

func TestFilePersister_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewStore(context.Background(), NewFilePersister(path)); err == nil {
		t.Fatalf("want load error for corrupt file")
	}
}
