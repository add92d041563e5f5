package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"museumhub/internal/exhibition"
	"museumhub/pkg/database"
	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

// import-csv loads artworks from a CSV in the layout `museumhub export csv`
// writes, into a new exhibition or into the selection.
func main() {
	var (
		in          = flag.String("in", "data/exhibition.csv", "input CSV path")
		title       = flag.String("title", "", "create an exhibition with this title; empty imports into the selection")
		description = flag.String("description", "", "exhibition description")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	store, err := exhibition.NewStore(ctx, exhibition.NewSQLPersister(db), exhibition.WithLogger(logger))
	if err != nil {
		log.Fatalf("load exhibitions: %v", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open %s: %v", *in, err)
	}
	defer f.Close()

	rows, err := readArtworks(f)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	exhibitionID := ""
	if *title != "" {
		ex, err := store.CreateExhibition(ctx, *title, *description)
		if err != nil {
			log.Fatalf("create exhibition: %v", err)
		}
		exhibitionID = ex.ID
	}

	added, skipped, err := importArtworks(ctx, store, rows, exhibitionID, logger)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	logger.Info("import finished", "file", *in, "added", added, "skipped", skipped)
}

type importRow struct {
	Artwork models.Artwork
	Note    string
}

func readArtworks(r io.Reader) ([]importRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var out []importRow
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 {
			continue
		}

		source, ok := models.ParseMuseumSource(valueAt(header, row, "source"))
		id := valueAt(header, row, "id")
		if !ok || id == "" {
			return nil, fmt.Errorf("line %d: source and id are required", line)
		}

		var styles models.StringList
		for _, s := range strings.Split(valueAt(header, row, "styles"), ",") {
			if s = strings.TrimSpace(s); s != "" {
				styles = append(styles, s)
			}
		}

		out = append(out, importRow{
			Artwork: models.Artwork{
				ID:           id,
				Title:        valueAt(header, row, "title"),
				Artist:       valueAt(header, row, "artist"),
				CreationDate: valueAt(header, row, "creation_date"),
				Medium:       valueAt(header, row, "medium"),
				Origin:       valueAt(header, row, "origin"),
				Styles:       styles,
				Description:  valueAt(header, row, "description"),
				MuseumSource: source,
				MuseumLink:   valueAt(header, row, "museum_link"),
				Image:        models.Image{ImageURL: valueAt(header, row, "image_url")},
			},
			Note: valueAt(header, row, "note"),
		})
	}
	return out, nil
}

// importArtworks adds every row, skipping artworks the target already holds.
func importArtworks(ctx context.Context, store *exhibition.Store, rows []importRow, exhibitionID string, logger *slog.Logger) (added, skipped int, err error) {
	for _, r := range rows {
		_, err := store.AddArtwork(ctx, r.Artwork, r.Note, exhibitionID)
		switch {
		case err == nil:
			added++
		case errors.Is(err, exhibition.ErrDuplicateArtwork):
			logger.Debug("skipping duplicate", "key", r.Artwork.Key())
			skipped++
		default:
			return added, skipped, fmt.Errorf("%s: %w", r.Artwork.Key(), err)
		}
	}
	return added, skipped, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
