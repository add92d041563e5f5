package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

var csvHeader = []string{
	"source", "id", "title", "artist", "creation_date", "medium", "origin",
	"styles", "image_url", "museum_link", "note", "added_at", "description",
}

func writeJSON(path string, items []models.ExhibitionArtwork) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.ExhibitionArtwork) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write(csvRow(item)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(item models.ExhibitionArtwork) []string {
	added := ""
	if !item.AddedAt.IsZero() {
		added = item.AddedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		string(item.MuseumSource),
		item.ID,
		item.Title,
		item.Artist,
		item.CreationDate,
		item.Medium,
		item.Origin,
		item.Styles.String(),
		item.Image.ImageURL,
		item.MuseumLink,
		item.Note,
		added,
		utils.PlainText(item.Description),
	}
}
