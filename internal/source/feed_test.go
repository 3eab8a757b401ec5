package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestFeedAdapter(name, url string) *FeedAdapter {
	a := NewFeedAdapter(name, url, 30)
	a.now = func() time.Time { return testNow }
	return a
}

func itemPublishedAt(ts time.Time) *gofeed.Item {
	return &gofeed.Item{Title: "Backend Engineer", Link: "https://example.com/j/1", PublishedParsed: &ts}
}

func TestWithinWindow_BoundaryIsAdmitted(t *testing.T) {
	a := newTestFeedAdapter("Remotive", "unused")

	exactly30 := testNow.AddDate(0, 0, -30)
	if !a.withinWindow(itemPublishedAt(exactly30)) {
		t.Error("entry exactly 30 days old should be admitted")
	}

	dayPast := testNow.AddDate(0, 0, -31)
	if a.withinWindow(itemPublishedAt(dayPast)) {
		t.Error("entry 31 days old should be rejected")
	}
}

func TestWithinWindow_UsesUpdatedWhenPublishedMissing(t *testing.T) {
	a := newTestFeedAdapter("Remotive", "unused")

	recent := testNow.AddDate(0, 0, -2)
	item := &gofeed.Item{UpdatedParsed: &recent}
	if !a.withinWindow(item) {
		t.Error("recent updated timestamp should be admitted")
	}
}

func TestWithinWindow_RawDateFallback(t *testing.T) {
	a := newTestFeedAdapter("Remotive", "unused")

	item := &gofeed.Item{Published: testNow.AddDate(0, 0, -5).Format(time.RFC1123Z)}
	if !a.withinWindow(item) {
		t.Error("recent raw RFC1123Z date should be admitted")
	}

	item = &gofeed.Item{Published: testNow.AddDate(0, 0, -60).Format(time.RFC1123Z)}
	if a.withinWindow(item) {
		t.Error("stale raw date should be rejected")
	}
}

func TestWithinWindow_BodyDateFallback(t *testing.T) {
	a := newTestFeedAdapter("We Work Remotely", "unused")

	item := &gofeed.Item{Description: "Great role. Posted on March 10, 2026. Apply now."}
	if !a.withinWindow(item) {
		t.Error("recent long-form body date should be admitted")
	}

	item = &gofeed.Item{Description: "Posted on December 7, 2023."}
	if a.withinWindow(item) {
		t.Error("stale long-form body date should be rejected")
	}
}

func TestWithinWindow_UnparsableDateFailsOpen(t *testing.T) {
	a := newTestFeedAdapter("Remotive", "unused")

	item := &gofeed.Item{Published: "sometime last week, probably"}
	if !a.withinWindow(item) {
		t.Error("entry with unparseable date should be admitted")
	}

	if !a.withinWindow(&gofeed.Item{}) {
		t.Error("entry with no date at all should be admitted")
	}
}

func TestDiscover_ConvertsRecentEntries(t *testing.T) {
	recent := testNow.AddDate(0, 0, -1).Format(time.RFC1123Z)
	stale := testNow.AddDate(0, 0, -90).Format(time.RFC1123Z)

	rss := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Backend Jobs</title>
    <item>
      <title>Acme Corp: Senior Backend Engineer</title>
      <link>https://example.com/jobs/acme-senior-backend</link>
      <pubDate>%s</pubDate>
      <description>&lt;p&gt;Build Go services. Salary $100,000 - $120,000/year. Fully remote.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Old Co: Ancient Role</title>
      <link>https://example.com/jobs/ancient</link>
      <pubDate>%s</pubDate>
      <description>Long gone.</description>
    </item>
  </channel>
</rss>`, recent, stale)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer srv.Close()

	a := newTestFeedAdapter("We Work Remotely", srv.URL)

	listings, err := a.Discover(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing (stale filtered), got %d", len(listings))
	}

	l := listings[0]
	if l.Title != "Senior Backend Engineer" {
		t.Errorf("Title = %q, want Senior Backend Engineer", l.Title)
	}
	if l.Company != "Acme Corp" {
		t.Errorf("Company = %q, want Acme Corp", l.Company)
	}
	if l.Link != "https://example.com/jobs/acme-senior-backend" {
		t.Errorf("Link = %q", l.Link)
	}
	if l.Source != "We Work Remotely" {
		t.Errorf("Source = %q", l.Source)
	}
	if l.SalaryText != "$100,000 - $120,000/year" {
		t.Errorf("SalaryText = %q", l.SalaryText)
	}
	if l.Description != "Build Go services. Salary $100,000 - $120,000/year. Fully remote." {
		t.Errorf("Description = %q", l.Description)
	}
	if l.Summary == "" {
		t.Error("Summary should be populated")
	}
}

func TestDiscover_FeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := newTestFeedAdapter("Remotive", srv.URL)

	if _, err := a.Discover(context.Background()); err == nil {
		t.Fatal("expected error for unavailable feed")
	}
}
