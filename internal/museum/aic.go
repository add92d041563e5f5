package museum

import (
	"fmt"
	"strconv"
	"strings"

	"museumhub/pkg/models"
)

// Art Institute of Chicago public API.
const (
	aicBaseURL          = "https://api.artic.edu/api/v1/artworks"
	aicImageURLTemplate = "https://www.artic.edu/iiif/2/%s/full/843,/0/default.jpg"
	aicLinkTemplate     = "https://www.artic.edu/artworks/%d"
)

// AICRecord is one artwork as the AIC API returns it. List endpoints fill a
// subset of the fields; the detail endpoint fills the rest.
type AICRecord struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	ArtistDisplay       string            `json:"artist_display"`
	Thumbnail           *AICThumbnail     `json:"thumbnail"`
	ImageID             string            `json:"image_id"`
	DateDisplay         string            `json:"date_display"`
	CategoryTitles      models.StringList `json:"category_titles"`
	DepartmentTitle     models.StringList `json:"department_title"`
	ClassificationTitle string            `json:"classification_title"`
	ArtworkTypeTitle    string            `json:"artwork_type_title"`
	IsPublicDomain      bool              `json:"is_public_domain"`

	PlaceOfOrigin       string            `json:"place_of_origin"`
	MainReferenceNumber string            `json:"main_reference_number"`
	Description         string            `json:"description"`
	MediumDisplay       string            `json:"medium_display"`
	StyleTitles         models.StringList `json:"style_titles"`
	ExhibitionHistory   string            `json:"exhibition_history"`
}

type AICThumbnail struct {
	LQIP    string `json:"lqip"`
	AltText string `json:"alt_text"`
}

type AICPagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type AICListResponse struct {
	Data       []AICRecord   `json:"data"`
	Pagination AICPagination `json:"pagination"`
}

type AICDetailResponse struct {
	Data AICRecord `json:"data"`
}

// AICImageURL builds the IIIF URL for an AIC image id.
func AICImageURL(imageID string) string {
	return fmt.Sprintf(aicImageURLTemplate, imageID)
}

// usable reports whether the record may become an artwork at all.
func (r AICRecord) usable() bool {
	return strings.TrimSpace(r.ImageID) != "" && r.IsPublicDomain
}

// AdaptAIC maps an AIC record to the canonical shape. It performs no I/O.
func AdaptAIC(r AICRecord) models.Artwork {
	alt, thumb := "", ""
	if r.Thumbnail != nil {
		alt = r.Thumbnail.AltText
		thumb = r.Thumbnail.LQIP
	}
	if alt == "" {
		alt = r.Title
	}

	styles := r.StyleTitles
	if len(styles) == 0 && r.ClassificationTitle != "" {
		styles = models.StringList{r.ClassificationTitle}
	}
	if len(styles) == 0 {
		styles = r.DepartmentTitle
	}

	return models.Artwork{
		ID:           strconv.Itoa(r.ID),
		Title:        r.Title,
		Artist:       r.ArtistDisplay,
		CreationDate: r.DateDisplay,
		Image: models.Image{
			ImageURL:  AICImageURL(r.ImageID),
			AltText:   alt,
			Thumbnail: thumb,
		},
		Medium:            r.MediumDisplay,
		Origin:            r.PlaceOfOrigin,
		Styles:            styles,
		Description:       r.Description,
		ExhibitionHistory: r.ExhibitionHistory,
		MuseumSource:      models.SourceAIC,
		MuseumLink:        fmt.Sprintf(aicLinkTemplate, r.ID),
	}
}

// adaptAICListed is used for search and filter hits, whose category titles
// stand in for the style titles only the detail endpoint returns.
func adaptAICListed(r AICRecord) models.Artwork {
	if len(r.CategoryTitles) > 0 {
		r.StyleTitles = r.CategoryTitles
	}
	return AdaptAIC(r)
}
