package models

import "time"

// Exhibition is a user-curated, persisted collection of artworks.
type Exhibition struct {
	ID          string              `json:"exhibitionId"`
	Title       string              `json:"title"`
	Slug        string              `json:"slug"`
	Description string              `json:"description,omitempty"`
	Artworks    []ExhibitionArtwork `json:"artworks"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ExhibitionArtwork is a canonical artwork as stored in an exhibition,
// unmodified, plus curation metadata.
type ExhibitionArtwork struct {
	Artwork
	Note    string    `json:"note,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}
