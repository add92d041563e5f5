package museum

import (
	"fmt"
	"strconv"
	"strings"

	"museumhub/pkg/models"
)

const (
	metBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"
	// metInvalidObject is the message the Met sends, sometimes with a 200,
	// for ids that do not resolve to an object.
	metInvalidObject = "Not a valid object"
)

// MetSearchResponse is the /search envelope: ids only, records are fetched
// one by one.
type MetSearchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// MetRecord is one object from /objects/{id}.
type MetRecord struct {
	ObjectID          int    `json:"objectID"`
	IsPublicDomain    bool   `json:"isPublicDomain"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ArtistDisplayBio  string `json:"artistDisplayBio"`
	ArtistNationality string `json:"artistNationality"`
	ObjectDate        string `json:"objectDate"`
	Culture           string `json:"culture"`
	Country           string `json:"country"`
	Medium            string `json:"medium"`
	Classification    string `json:"classification"`
	Department        string `json:"department"`
	ObjectURL         string `json:"objectURL"`

	Message string `json:"message"`
}

func (r MetRecord) usable() bool {
	return r.Message != metInvalidObject && r.IsPublicDomain && strings.TrimSpace(r.PrimaryImage) != ""
}

// classifiedAs reports whether the record's classification contains term,
// ignoring case. An empty term matches everything.
func (r MetRecord) classifiedAs(term string) bool {
	return strings.Contains(strings.ToLower(r.Classification), strings.ToLower(term))
}

// AdaptMet maps a Met object to the canonical shape. It performs no I/O.
func AdaptMet(r MetRecord) models.Artwork {
	img := r.PrimaryImage
	if img == "" {
		img = r.PrimaryImageSmall
	}

	origin := r.Culture
	if origin == "" {
		origin = r.Country
	}
	if origin == "" {
		origin = r.ArtistNationality
	}

	var styles models.StringList
	if c := strings.TrimSpace(r.Classification); c != "" {
		styles = models.StringList{c}
	}

	return models.Artwork{
		ID:           strconv.Itoa(r.ObjectID),
		Title:        r.Title,
		Artist:       r.ArtistDisplayName,
		CreationDate: r.ObjectDate,
		Image: models.Image{
			ImageURL:  img,
			AltText:   fmt.Sprintf("%s by %s", r.Title, r.ArtistDisplayName),
			Thumbnail: r.PrimaryImageSmall,
		},
		Medium:       r.Medium,
		Origin:       origin,
		Styles:       styles,
		Description:  r.ArtistDisplayBio,
		MuseumSource: models.SourceMet,
		MuseumLink:   r.ObjectURL,
	}
}
