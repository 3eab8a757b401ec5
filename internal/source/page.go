package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jwesterfield/jobdigest/internal/browse"
	"github.com/jwesterfield/jobdigest/internal/extract"
	"github.com/jwesterfield/jobdigest/internal/model"
)

// minTitleLen filters out card fragments whose first line is too short to
// be a real job title.
const minTitleLen = 4

// cardSelectors are per-board heuristics tried before the generic set,
// keyed by the configured source name.
var cardSelectors = map[string][]string{
	// Himalayas renders each job as an <a> linking to /jobs/<company>/<role>.
	"Himalayas": {"a[href^='/jobs/']"},
	// Working Nomads renders jobs as list items with job-ish class names.
	"Working Nomads": {".job-item", "a.job-title", "li[class*='job']"},
}

// genericCardSelectors cover boards that render listings as anything
// card- or listing-shaped.
var genericCardSelectors = []string{
	"[class*='job-card']",
	"li[class*='job']",
	"[class*='listing'] li",
	"article[class*='job']",
	"a[class*='job']",
}

// PageAdapter discovers listings by rendering a board page and walking
// job-card shaped elements. Boards without a usable feed end up here; their
// listings carry only a thin summary and rely on the detail fetcher for a
// full description.
type PageAdapter struct {
	name     string
	url      string
	renderer browse.Renderer
}

// NewPageAdapter creates an adapter that scrapes one board page through the
// shared renderer.
func NewPageAdapter(name, url string, renderer browse.Renderer) *PageAdapter {
	return &PageAdapter{name: name, url: url, renderer: renderer}
}

func (a *PageAdapter) Name() string { return a.name }

// Discover renders the board and extracts one listing per plausible card.
// Cards are deduplicated by title within the adapter; cross-source dedup by
// link happens later in the pipeline.
func (a *PageAdapter) Discover(ctx context.Context) ([]model.JobListing, error) {
	doc, err := a.renderer.Render(ctx, a.url)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", a.name, err)
	}

	selectors := append(append([]string{}, cardSelectors[a.name]...), genericCardSelectors...)
	cards := extract.FirstMatching(doc, selectors)
	if cards == nil {
		return nil, nil
	}

	var listings []model.JobListing
	seen := make(map[string]bool)
	cards.Each(func(_ int, card *goquery.Selection) {
		text := card.Text()
		lines := cardLines(text)
		if len(lines) == 0 {
			return
		}

		title := lines[0]
		if len(title) < minTitleLen || seen[title] {
			return
		}
		seen[title] = true

		company := ""
		if len(lines) > 1 {
			company = lines[1]
		}

		listings = append(listings, model.JobListing{
			Title:      title,
			Company:    company,
			Link:       a.cardLink(card),
			SalaryText: ExtractSalary(text),
			Summary:    cardSummary(lines),
			Source:     a.name,
		})
	})

	return listings, nil
}

// cardLink prefers the card's own href (cards that are anchors) and falls
// back to the first contained link.
func (a *PageAdapter) cardLink(card *goquery.Selection) string {
	href, ok := card.Attr("href")
	if !ok {
		href, _ = card.Find("a[href]").First().Attr("href")
	}
	return absoluteLink(href, a.url)
}

// absoluteLink resolves a possibly relative href against the board page's
// origin.
func absoluteLink(href, base string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// cardLines splits a card's visible text into trimmed non-empty lines.
func cardLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// cardSummary joins the lines after title and company, which on most boards
// carry tags, location, and salary blurbs.
func cardSummary(lines []string) string {
	if len(lines) <= 2 {
		return ""
	}
	rest := lines[2:]
	if len(rest) > 3 {
		rest = rest[:3]
	}
	return strings.Join(rest, " | ")
}
