package source

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML converts an HTML fragment to plain text: unescape entities
// (handles feeds that double-encode their bodies), drop tags, collapse
// whitespace.
func stripHTML(content string) string {
	plain := htmlTagPattern.ReplaceAllString(html.UnescapeString(content), " ")
	return strings.Join(strings.Fields(plain), " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
