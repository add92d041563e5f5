// Package listing orders and pages an aggregated artwork list.
package listing

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"museumhub/pkg/models"
)

type Order string

const (
	OrderTitle    Order = "title"
	OrderYearAsc  Order = "year-asc"
	OrderYearDesc Order = "year-desc"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

func ParseOrder(s string) (Order, bool) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderTitle, true
	case OrderTitle, OrderYearAsc, OrderYearDesc:
		return o, true
	}
	return "", false
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ParseYear returns the first four-digit run in a free-text date, or 0.
func ParseYear(date string) int {
	m := yearPattern.FindString(date)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// Sort returns a sorted copy of items. The sort is stable, so ties keep
// their aggregated order.
func Sort(items []models.Artwork, order Order) []models.Artwork {
	out := slices.Clone(items)

	switch order {
	case OrderYearAsc:
		slices.SortStableFunc(out, func(a, b models.Artwork) int {
			return ParseYear(a.CreationDate) - ParseYear(b.CreationDate)
		})
	case OrderYearDesc:
		slices.SortStableFunc(out, func(a, b models.Artwork) int {
			return ParseYear(b.CreationDate) - ParseYear(a.CreationDate)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Artwork) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}
	return out
}

type Page struct {
	Number     int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices one page out of items. page < 1 is treated as 1,
// perPage <= 0 as DefaultPerPage and perPage above MaxPerPage as
// MaxPerPage; a page past the end is empty.
func Paginate(items []models.Artwork, page, perPage int) ([]models.Artwork, Page) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)

	p := Page{
		Number:     page,
		PerPage:    perPage,
		Total:      len(items),
		TotalPages: (len(items) + perPage - 1) / perPage,
	}

	// compare page numbers, not offsets: page comes straight from the query
	if page-1 >= p.TotalPages {
		return []models.Artwork{}, p
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	return items[start:end], p
}
