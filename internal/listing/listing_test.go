package listing

import (
	"math"
	"reflect"
	"testing"

	"museumhub/pkg/models"
)

func titles(items []models.Artwork) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.Title
	}
	return out
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1889", 1889},
		{"c. 1884-86", 1884},
		{"ca. 1665–67", 1665},
		{"19th century", 0},
		{"", 0},
		{"dated 1503, reworked 1519", 1503},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.in); got != tt.want {
			t.Fatalf("ParseYear(%q): want %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestSort(t *testing.T) {
	items := []models.Artwork{
		{Title: "b", CreationDate: "1900"},
		{Title: "A", CreationDate: "unknown"},
		{Title: "c", CreationDate: "1800"},
		{Title: "d", CreationDate: "1900"},
	}

	if got, want := titles(Sort(items, OrderTitle)), []string{"A", "b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("title: want %v, got %v", want, got)
	}
	if got, want := titles(Sort(items, OrderYearAsc)), []string{"A", "c", "b", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("year-asc: want %v, got %v", want, got)
	}
	if got, want := titles(Sort(items, OrderYearDesc)), []string{"b", "d", "c", "A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("year-desc: want %v, got %v", want, got)
	}
	if items[0].Title != "b" {
		t.Fatalf("Sort must not modify its input")
	}
}

func TestParseOrder(t *testing.T) {
	if o, ok := ParseOrder(""); !ok || o != OrderTitle {
		t.Fatalf("empty order should default to title")
	}
	if o, ok := ParseOrder("YEAR-DESC"); !ok || o != OrderYearDesc {
		t.Fatalf("want year-desc, got %q", o)
	}
	if _, ok := ParseOrder("random"); ok {
		t.Fatalf("unknown order accepted")
	}
}

func TestPaginate(t *testing.T) {
	items := make([]models.Artwork, 45)
	for i := range items {
		items[i].ID = string(rune('a' + i%26))
	}

	tests := []struct {
		name      string
		page, per int
		wantLen   int
		wantPage  Page
	}{
		{"first", 1, 20, 20, Page{1, 20, 45, 3}},
		{"last partial", 3, 20, 5, Page{3, 20, 45, 3}},
		{"past the end", 4, 20, 0, Page{4, 20, 45, 3}},
		{"page below one", 0, 20, 20, Page{1, 20, 45, 3}},
		{"default per page", 1, 0, 20, Page{1, DefaultPerPage, 45, 3}},
		{"huge page", 1 << 62, 4, 0, Page{1 << 62, 4, 45, 12}},
		{"per page capped", 1, math.MaxInt, 45, Page{1, MaxPerPage, 45, 1}},
		{"huge page and per page", math.MaxInt, math.MaxInt, 0, Page{math.MaxInt, MaxPerPage, 45, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, p := Paginate(items, tt.page, tt.per)
			if len(got) != tt.wantLen {
				t.Fatalf("want %d items, got %d", tt.wantLen, len(got))
			}
			if p != tt.wantPage {
				t.Fatalf("want %+v, got %+v", tt.wantPage, p)
			}
		})
	}

	if got, p := Paginate(nil, 1, 10); len(got) != 0 || p.TotalPages != 0 {
		t.Fatalf("empty input: got %v %+v", got, p)
	}
}
