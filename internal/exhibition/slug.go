package exhibition

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	slugStrip = regexp.MustCompile(`[^\w\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// GenerateSlug lowercases title, drops everything but word characters,
// whitespace and hyphens, and joins the words with hyphens.
func GenerateSlug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	return slugSpace.ReplaceAllString(s, "-")
}

// GenerateUniqueSlug returns GenerateSlug(title), suffixed with -2, -3, ...
// until it is not in existing.
func GenerateUniqueSlug(title string, existing []string) string {
	base := GenerateSlug(title)
	slug := base
	for n := 2; slices.Contains(existing, slug); n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	return slug
}
