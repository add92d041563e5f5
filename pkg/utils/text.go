package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup that museums embed in descriptions and exhibition
// histories, collapsing whitespace. Input without markup is returned trimmed.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	// keep paragraph boundaries readable once tags are gone
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	doc.Find("script, style").Remove()
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
