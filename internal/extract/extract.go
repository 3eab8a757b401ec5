// Package extract implements the ordered selector-strategy mechanics shared
// by job-card discovery and detail extraction: try CSS selectors in order
// and stop at the first one that yields an acceptable result.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstMatching returns the nodes matched by the first selector that matches
// anything in doc, or nil when no selector matches.
func FirstMatching(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// FirstAcceptedText walks selectors in order and, within each, every
// matching element in document order. It returns the first element text that
// is at least minLen characters long and contains none of the denied
// substrings (checked case-insensitively).
func FirstAcceptedText(doc *goquery.Document, selectors []string, minLen int, deny []string) (string, bool) {
	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := collapseWhitespace(el.Text())
			if len(text) < minLen || containsAny(text, deny) {
				return true
			}
			found = text
			return false
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func containsAny(text string, deny []string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range deny {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
