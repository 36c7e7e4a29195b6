package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTitle returns the text of the first <title> element.
// ok is false when the page has no title element.
func extractTitle(doc *goquery.Document) (title string, ok bool) {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// extractDescription returns the content attribute of the first
// <meta name="description"> element. ok is false when there is no such
// element or it has no content attribute.
func extractDescription(doc *goquery.Document) (description string, ok bool) {
	return doc.Find(`meta[name="description"]`).First().Attr("content")
}

// extractHrefs returns the href attribute of every anchor in document
// order. Duplicates are kept; classification removes them.
func extractHrefs(doc *goquery.Document) []string {
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}
