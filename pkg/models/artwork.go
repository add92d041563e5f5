package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MuseumSource identifies which collection API produced an artwork.
type MuseumSource string

const (
	SourceAIC MuseumSource = "aic" // Art Institute of Chicago
	SourceMet MuseumSource = "met" // The Metropolitan Museum of Art
)

// ParseMuseumSource normalizes s and reports whether it names a known source.
func ParseMuseumSource(s string) (MuseumSource, bool) {
	switch MuseumSource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceAIC:
		return SourceAIC, true
	case SourceMet:
		return SourceMet, true
	default:
		return "", false
	}
}

// Artwork is the normalized, source-agnostic form of an artwork record.
//
// Every museum response is adapted into this structure before anything else
// looks at it. Values are built fresh on each fetch and never mutated after.
type Artwork struct {
	ID                string       `json:"id"`                          // unique within MuseumSource only
	Title             string       `json:"title"`                       // may be empty; UI shows "Untitled"
	Artist            string       `json:"artist,omitempty"`            // display name, free text
	CreationDate      string       `json:"creationDate,omitempty"`      // free text, e.g. "c. 1889"
	Image             Image        `json:"image"`                       // the only field gating inclusion
	Medium            string       `json:"medium,omitempty"`            // materials
	Origin            string       `json:"origin,omitempty"`            // culture / place / nationality
	Styles            StringList   `json:"styles,omitempty"`            // classification, one or many
	Description       string       `json:"description,omitempty"`       // may contain source markup
	ExhibitionHistory string       `json:"exhibitionHistory,omitempty"` // may contain source markup
	MuseumSource      MuseumSource `json:"museumSource"`                // "aic" or "met"
	MuseumLink        string       `json:"museumLink,omitempty"`        // deep link on the museum's site
}

type Image struct {
	ImageURL  string `json:"imageURL,omitempty"`
	AltText   string `json:"altText,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Key returns the global identity of the artwork. Ids are only unique per
// source, so two artworks are the same object iff their keys match.
func (a Artwork) Key() string {
	return ArtworkKey(a.MuseumSource, a.ID)
}

func ArtworkKey(source MuseumSource, id string) string {
	return fmt.Sprintf("%s:%s", source, id)
}

// StringList holds a value that sources send either as a single string or
// as an array of strings. A single element is encoded back as a bare string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return fmt.Errorf("string list: %w", err)
		}
		*l = compact(arr)
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	*l = compact([]string{one})
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

// String joins the values for display.
func (l StringList) String() string {
	return strings.Join(l, ", ")
}

func compact(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
