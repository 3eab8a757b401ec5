package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// summaryLen is how much of the body is kept as the short fallback summary.
const summaryLen = 300

// longDatePattern catches dates some boards embed in the entry body instead
// of the feed metadata, e.g. "December 7, 2023".
var longDatePattern = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`)

// FeedAdapter discovers listings from an RSS or Atom feed. Feed entries
// carry the full posting body, so listings come back with Description
// already populated and never need a detail fetch.
type FeedAdapter struct {
	name   string
	url    string
	window int // recency window in days
	parser *gofeed.Parser
	now    func() time.Time
}

// NewFeedAdapter creates an adapter for one feed URL. Entries older than
// windowDays are skipped.
func NewFeedAdapter(name, url string, windowDays int) *FeedAdapter {
	return &FeedAdapter{
		name:   name,
		url:    url,
		window: windowDays,
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

func (a *FeedAdapter) Name() string { return a.name }

// Discover pulls the feed and converts entries inside the recency window
// into listings.
func (a *FeedAdapter) Discover(ctx context.Context) ([]model.JobListing, error) {
	feed, err := a.parser.ParseURLWithContext(a.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", a.name, err)
	}
	return a.convert(feed.Items), nil
}

func (a *FeedAdapter) convert(items []*gofeed.Item) []model.JobListing {
	var listings []model.JobListing
	for _, item := range items {
		if item == nil || !a.withinWindow(item) {
			continue
		}

		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)

		company := ""
		if item.Author != nil {
			company = strings.TrimSpace(item.Author.Name)
		}
		if company == "" {
			// WWR-style feeds encode "Company: Job Title" in the entry title.
			if c, rest, ok := strings.Cut(title, ": "); ok && rest != "" {
				company, title = strings.TrimSpace(c), strings.TrimSpace(rest)
			}
		}

		if title == "" || link == "" {
			continue
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}
		full := truncate(stripHTML(body), model.MaxDescription)

		listings = append(listings, model.JobListing{
			Title:       title,
			Company:     company,
			Link:        link,
			SalaryText:  ExtractSalary(full),
			Summary:     truncate(full, summaryLen),
			Description: full,
			Source:      a.name,
		})
	}
	return listings
}

// withinWindow reports whether the entry was published inside the recency
// window. The checks run from most to least structured: parsed feed
// timestamps, then the raw date string, then a long-form date scan of the
// body. Entries with no parseable date at all are admitted; discarding an
// unparseable-but-valid posting is worse than keeping a possibly stale one.
func (a *FeedAdapter) withinWindow(item *gofeed.Item) bool {
	cutoff := a.now().AddDate(0, 0, -a.window)

	if ts := item.PublishedParsed; ts != nil {
		return !ts.Before(cutoff)
	}
	if ts := item.UpdatedParsed; ts != nil {
		return !ts.Before(cutoff)
	}

	raw := item.Published
	if raw == "" {
		raw = item.Updated
	}
	if raw != "" {
		if ts, ok := parseRawDate(raw); ok {
			return !ts.Before(cutoff)
		}
	}

	if m := longDatePattern.FindString(item.Description); m != "" {
		if ts, err := time.Parse("January 2 2006", strings.ReplaceAll(m, ",", "")); err == nil {
			return !ts.Before(cutoff)
		}
	}

	return true
}

// parseRawDate tries the date layouts that show up in real feeds.
func parseRawDate(raw string) (time.Time, bool) {
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
