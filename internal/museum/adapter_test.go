package museum

import "testing"

func TestAdaptAIC_Fallbacks(t *testing.T) {
	r := AICRecord{
		ID:                  27992,
		Title:               "A Sunday on La Grande Jatte",
		ArtistDisplay:       "Georges Seurat\nFrench, 1859-1891",
		ImageID:             "2d484387-2509-5e8e-2c43-22f9981972eb",
		DateDisplay:         "1884-86",
		ClassificationTitle: "painting",
		DepartmentTitle:     []string{"Painting and Sculpture of Europe"},
		IsPublicDomain:      true,
	}

	a := AdaptAIC(r)
	if a.ID != "27992" || a.MuseumSource != "aic" {
		t.Fatalf("unexpected identity %q/%q", a.ID, a.MuseumSource)
	}
	if a.Image.ImageURL != "https://www.artic.edu/iiif/2/2d484387-2509-5e8e-2c43-22f9981972eb/full/843,/0/default.jpg" {
		t.Fatalf("unexpected image url %q", a.Image.ImageURL)
	}
	if a.Image.AltText != r.Title {
		t.Fatalf("alt text should fall back to title, got %q", a.Image.AltText)
	}
	if len(a.Styles) != 1 || a.Styles[0] != "painting" {
		t.Fatalf("styles should fall back to classification, got %v", a.Styles)
	}
	if a.MuseumLink != "https://www.artic.edu/artworks/27992" {
		t.Fatalf("unexpected link %q", a.MuseumLink)
	}

	r.ClassificationTitle = ""
	if got := AdaptAIC(r).Styles; len(got) != 1 || got[0] != "Painting and Sculpture of Europe" {
		t.Fatalf("styles should fall back to department, got %v", got)
	}

	r.StyleTitles = []string{"Pointillism", "Post-Impressionism"}
	r.Thumbnail = &AICThumbnail{LQIP: "data:image/gif;base64,AAA", AltText: "Painting of people in a park"}
	a = AdaptAIC(r)
	if len(a.Styles) != 2 {
		t.Fatalf("style titles take priority, got %v", a.Styles)
	}
	if a.Image.AltText != "Painting of people in a park" || a.Image.Thumbnail != "data:image/gif;base64,AAA" {
		t.Fatalf("thumbnail fields not mapped: %+v", a.Image)
	}
}

func TestAdaptMet_Fallbacks(t *testing.T) {
	r := MetRecord{
		ObjectID:          436535,
		IsPublicDomain:    true,
		PrimaryImageSmall: "https://images.metmuseum.org/small.jpg",
		Title:             "Wheat Field with Cypresses",
		ArtistDisplayName: "Vincent van Gogh",
		ArtistDisplayBio:  "Dutch, Zundert 1853-1890 Auvers-sur-Oise",
		ArtistNationality: "Dutch",
		ObjectDate:        "1889",
		Classification:    "Paintings",
		ObjectURL:         "https://www.metmuseum.org/art/collection/search/436535",
	}

	a := AdaptMet(r)
	if a.ID != "436535" || a.MuseumSource != "met" {
		t.Fatalf("unexpected identity %q/%q", a.ID, a.MuseumSource)
	}
	if a.Image.ImageURL != r.PrimaryImageSmall {
		t.Fatalf("image should fall back to the small image, got %q", a.Image.ImageURL)
	}
	if a.Image.AltText != "Wheat Field with Cypresses by Vincent van Gogh" {
		t.Fatalf("unexpected alt text %q", a.Image.AltText)
	}
	if a.Origin != "Dutch" {
		t.Fatalf("origin should fall back to nationality, got %q", a.Origin)
	}
	if a.Description != r.ArtistDisplayBio {
		t.Fatalf("description should be the artist bio, got %q", a.Description)
	}

	r.Country = "Netherlands"
	if got := AdaptMet(r).Origin; got != "Netherlands" {
		t.Fatalf("country comes before nationality, got %q", got)
	}
	r.Culture = "Dutch school"
	if got := AdaptMet(r).Origin; got != "Dutch school" {
		t.Fatalf("culture comes first, got %q", got)
	}

	r.Classification = ""
	if got := AdaptMet(r).Styles; got != nil {
		t.Fatalf("no classification means no styles, got %v", got)
	}
}

func TestMetRecord_Usable(t *testing.T) {
	tests := []struct {
		name string
		rec  MetRecord
		want bool
	}{
		{"valid", MetRecord{IsPublicDomain: true, PrimaryImage: "x.jpg"}, true},
		{"not public", MetRecord{IsPublicDomain: false, PrimaryImage: "x.jpg"}, false},
		{"small image only", MetRecord{IsPublicDomain: true, PrimaryImageSmall: "x.jpg"}, false},
		{"invalid object", MetRecord{IsPublicDomain: true, PrimaryImage: "x.jpg", Message: metInvalidObject}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.usable(); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
