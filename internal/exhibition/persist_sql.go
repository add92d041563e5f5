package exhibition

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"museumhub/pkg/models"
)

// SQLPersister stores the state in the exhibitions and exhibition_artworks
// tables. Artworks with a NULL exhibition_id are the selected list.
type SQLPersister struct {
	DB *sql.DB
}

func NewSQLPersister(db *sql.DB) *SQLPersister {
	return &SQLPersister{DB: db}
}

var artworkColumns = []string{"exhibition_id", "position", "museum_source", "artwork_id", "artwork", "note", "added_at"}

// Save replaces the stored state in one transaction.
func (p *SQLPersister) Save(ctx context.Context, st State) error {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"exhibition_artworks", "exhibitions"} {
		query, args, err := sq.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build delete %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if len(st.Exhibitions) > 0 {
		ins := sq.Insert("exhibitions").Columns("id", "title", "slug", "description", "position", "created_at", "updated_at")
		for i, e := range st.Exhibitions {
			ins = ins.Values(e.ID, e.Title, e.Slug, e.Description, i, e.CreatedAt.UTC(), e.UpdatedAt.UTC())
		}
		if err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert exhibitions: %w", err)
		}
	}

	ins := sq.Insert("exhibition_artworks").Columns(artworkColumns...)
	rows := 0
	add := func(exhibitionID any, list []models.ExhibitionArtwork) error {
		for i, a := range list {
			raw, err := json.Marshal(a.Artwork)
			if err != nil {
				return fmt.Errorf("encode artwork %s: %w", a.Key(), err)
			}
			ins = ins.Values(exhibitionID, i, string(a.MuseumSource), a.ID, string(raw), a.Note, a.AddedAt.UTC())
			rows++
		}
		return nil
	}
	if err := add(nil, st.Selected); err != nil {
		return err
	}
	for _, e := range st.Exhibitions {
		if err := add(e.ID, e.Artworks); err != nil {
			return err
		}
	}
	if rows > 0 {
		if err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert artworks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (p *SQLPersister) Load(ctx context.Context) (State, error) {
	var st State

	query, args, err := sq.Select("id", "title", "slug", "description", "created_at", "updated_at").
		From("exhibitions").
		OrderBy("position").
		ToSql()
	if err != nil {
		return State{}, fmt.Errorf("build select exhibitions: %w", err)
	}
	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return State{}, fmt.Errorf("query exhibitions: %w", err)
	}
	defer rows.Close()

	byID := map[string]int{}
	for rows.Next() {
		var (
			e    models.Exhibition
			desc sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Slug, &desc, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return State{}, fmt.Errorf("scan exhibition: %w", err)
		}
		e.Description = desc.String
		e.Artworks = []models.ExhibitionArtwork{}
		byID[e.ID] = len(st.Exhibitions)
		st.Exhibitions = append(st.Exhibitions, e)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("iterate exhibitions: %w", err)
	}

	query, args, err = sq.Select(artworkColumns...).
		From("exhibition_artworks").
		OrderBy("exhibition_id", "position").
		ToSql()
	if err != nil {
		return State{}, fmt.Errorf("build select artworks: %w", err)
	}
	arows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return State{}, fmt.Errorf("query artworks: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var (
			exhibitionID sql.NullString
			position     int
			source, id   string
			raw          string
			note         sql.NullString
			addedAt      time.Time
		)
		if err := arows.Scan(&exhibitionID, &position, &source, &id, &raw, &note, &addedAt); err != nil {
			return State{}, fmt.Errorf("scan artwork: %w", err)
		}

		a := models.ExhibitionArtwork{Note: note.String, AddedAt: addedAt}
		if err := json.Unmarshal([]byte(raw), &a.Artwork); err != nil {
			return State{}, fmt.Errorf("decode artwork %s:%s: %w", source, id, err)
		}

		if !exhibitionID.Valid {
			st.Selected = append(st.Selected, a)
			continue
		}
		i, ok := byID[exhibitionID.String]
		if !ok {
			continue
		}
		st.Exhibitions[i].Artworks = append(st.Exhibitions[i].Artworks, a)
	}
	if err := arows.Err(); err != nil {
		return State{}, fmt.Errorf("iterate artworks: %w", err)
	}
	return st, nil
}

func exec(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
