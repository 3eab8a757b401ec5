package detail

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/jwesterfield/jobdigest/internal/model"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubRenderer struct {
	html   string
	err    error
	visits int
}

func (s *stubRenderer) Render(_ context.Context, _ string) (*goquery.Document, error) {
	s.visits++
	if s.err != nil {
		return nil, s.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(s.html))
}

func (s *stubRenderer) Close() error { return nil }

func thinListing() model.JobListing {
	return model.JobListing{
		Title:   "Backend Engineer",
		Link:    "https://example.com/jobs/1",
		Summary: "short blurb",
		Source:  "Himalayas",
	}
}

func TestEnrich_PopulatesDescription(t *testing.T) {
	body := strings.Repeat("You will build and operate Go services. ", 10)
	renderer := &stubRenderer{html: `<html><body><div class="job-description">` + body + `</div></body></html>`}
	f := NewFetcher(renderer, testLogger)

	got := f.Enrich(context.Background(), thinListing())
	if !strings.Contains(got.Description, "build and operate Go services") {
		t.Errorf("Description = %q, want extracted body", got.Description)
	}
	if len(got.Description) > model.MaxDescription {
		t.Errorf("Description length %d exceeds cap", len(got.Description))
	}
}

func TestEnrich_SkipsListingsWithUsableDescription(t *testing.T) {
	renderer := &stubRenderer{html: `<html></html>`}
	f := NewFetcher(renderer, testLogger)

	listing := thinListing()
	listing.Description = strings.Repeat("already enriched from the feed. ", 10)

	got := f.Enrich(context.Background(), listing)
	if renderer.visits != 0 {
		t.Errorf("renderer visited %d times, want 0", renderer.visits)
	}
	if got.Description != listing.Description {
		t.Error("description should be unchanged")
	}
}

func TestEnrich_RejectsNoiseThenAcceptsNextCandidate(t *testing.T) {
	noisy := "Sign in to apply " + strings.Repeat("padding text to clear the length threshold ", 5)
	clean := strings.Repeat("Design APIs and own services end to end. ", 8)
	html := `<html><body>
		<article>` + noisy + `</article>
		<article>` + clean + `</article>
	</body></html>`
	renderer := &stubRenderer{html: html}
	f := NewFetcher(renderer, testLogger)

	got := f.Enrich(context.Background(), thinListing())
	if strings.Contains(strings.ToLower(got.Description), "sign in to apply") {
		t.Error("noisy candidate should have been rejected")
	}
	if !strings.Contains(got.Description, "Design APIs") {
		t.Errorf("Description = %q, want the clean candidate", got.Description)
	}
}

func TestEnrich_MissLeavesListingUnchanged(t *testing.T) {
	renderer := &stubRenderer{html: `<html><body><p>tiny</p></body></html>`}
	f := NewFetcher(renderer, testLogger)

	listing := thinListing()
	got := f.Enrich(context.Background(), listing)
	if got != listing {
		t.Errorf("listing should be unchanged on extraction miss, got %+v", got)
	}
}

func TestEnrich_RenderFailureLeavesListingUnchanged(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("net::ERR_CONNECTION_RESET")}
	f := NewFetcher(renderer, testLogger)

	listing := thinListing()
	if got := f.Enrich(context.Background(), listing); got != listing {
		t.Error("listing should be unchanged when the page fails to render")
	}
}

func TestEnrich_NoLink(t *testing.T) {
	renderer := &stubRenderer{html: `<html></html>`}
	f := NewFetcher(renderer, testLogger)

	listing := thinListing()
	listing.Link = ""
	f.Enrich(context.Background(), listing)
	if renderer.visits != 0 {
		t.Error("link-less listing should not trigger a page visit")
	}
}

func TestEnrich_TruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("very long posting body ", 300)
	renderer := &stubRenderer{html: `<html><body><article>` + body + `</article></body></html>`}
	f := NewFetcher(renderer, testLogger)

	got := f.Enrich(context.Background(), thinListing())
	if len(got.Description) != model.MaxDescription {
		t.Errorf("Description length = %d, want %d", len(got.Description), model.MaxDescription)
	}
}
