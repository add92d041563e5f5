package museum

import "strings"

// Category is the source-agnostic artwork type used for filtering.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryPaintings   Category = "paintings"
	CategoryPrints      Category = "prints"
	CategoryPhotographs Category = "photographs"
	CategorySculpture   Category = "sculpture"
	CategoryCeramics    Category = "ceramics"
	CategoryFurniture   Category = "furniture"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryPaintings,
		CategoryPrints,
		CategoryPhotographs,
		CategorySculpture,
		CategoryCeramics,
		CategoryFurniture,
	}
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryAll, true
	}
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Source vocabularies. An empty term means "no category constraint".
var (
	aicCategoryTerms = map[Category]string{
		CategoryAll:         "",
		CategoryPaintings:   "Painting",
		CategoryPrints:      "Print",
		CategoryPhotographs: "Photograph",
		CategorySculpture:   "Sculpture",
		CategoryCeramics:    "Ceramics",
		CategoryFurniture:   "Furniture",
	}

	metCategoryTerms = map[Category]string{
		CategoryAll:         "",
		CategoryPaintings:   "paintings",
		CategoryPrints:      "prints",
		CategoryPhotographs: "photographs",
		CategorySculpture:   "sculpture",
		CategoryCeramics:    "ceramics",
		CategoryFurniture:   "furniture",
	}
)
