package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

const (
	titleWidth  = 40
	artistWidth = 28
	dateWidth   = 14
	textWidth   = 240
)

// table pads cells by display width so CJK titles and artist names line up.
type table struct {
	widths []int
	rows   [][]string
}

func newTable(widths ...int) *table {
	return &table{widths: widths}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 || i >= len(t.widths) {
				parts[i] = cell
				continue
			}
			parts[i] = runewidth.FillRight(runewidth.Truncate(cell, t.widths[i], "…"), t.widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

func (c *cli) printArtworks(items []models.Artwork) {
	t := newTable(6, 10, titleWidth, artistWidth, dateWidth)
	t.add("SOURCE", "ID", "TITLE", "ARTIST", "DATE", "STYLES")
	for _, a := range items {
		t.add(string(a.MuseumSource), a.ID, displayTitle(a.Title), a.Artist, a.CreationDate, a.Styles.String())
	}
	t.render(c.out)
}

func (c *cli) printArtworkDetail(a *models.Artwork) {
	t := newTable(12)
	t.add("Title", displayTitle(a.Title))
	t.add("Artist", a.Artist)
	t.add("Date", a.CreationDate)
	t.add("Medium", a.Medium)
	t.add("Origin", a.Origin)
	t.add("Styles", a.Styles.String())
	t.add("Source", fmt.Sprintf("%s %s", a.MuseumSource, a.ID))
	t.add("Link", a.MuseumLink)
	t.add("Image", a.Image.ImageURL)
	if d := utils.PlainText(a.Description); d != "" {
		t.add("About", runewidth.Truncate(d, textWidth, "…"))
	}
	if h := utils.PlainText(a.ExhibitionHistory); h != "" {
		t.add("Exhibited", runewidth.Truncate(h, textWidth, "…"))
	}
	t.render(c.out)
}

func (c *cli) printExhibitions(items []models.Exhibition) {
	t := newTable(titleWidth, 28, 9)
	t.add("TITLE", "SLUG", "ARTWORKS", "UPDATED")
	for _, e := range items {
		t.add(e.Title, e.Slug, fmt.Sprint(len(e.Artworks)), e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	t.render(c.out)
}

func (c *cli) printExhibitionDetail(e *models.Exhibition) {
	fmt.Fprintf(c.out, "%s (%s)\n", e.Title, e.Slug)
	if d := utils.PlainText(e.Description); d != "" {
		fmt.Fprintln(c.out, d)
	}
	fmt.Fprintln(c.out)
	c.printExhibitionArtworks(e.Artworks)
}

func (c *cli) printExhibitionArtworks(items []models.ExhibitionArtwork) {
	t := newTable(6, 10, titleWidth, artistWidth)
	t.add("SOURCE", "ID", "TITLE", "ARTIST", "NOTE")
	for _, a := range items {
		t.add(string(a.MuseumSource), a.ID, displayTitle(a.Title), a.Artist, a.Note)
	}
	t.render(c.out)
}
