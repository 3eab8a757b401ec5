// Package detail pulls the full posting body for listings whose sources
// only exposed a short blurb.
package detail

import (
	"context"
	"log/slog"

	"github.com/jwesterfield/jobdigest/internal/browse"
	"github.com/jwesterfield/jobdigest/internal/extract"
	"github.com/jwesterfield/jobdigest/internal/model"
)

// minAcceptLen is the shortest element text accepted as a posting body.
const minAcceptLen = 150

// sourceSelectors are body-selector candidates tuned per known board, tried
// before the generic fallbacks.
var sourceSelectors = map[string][]string{
	"We Work Remotely": {
		"#job-listing",
		".listing-container > div:first-child",
		"section.job",
		"div.job",
	},
	"Remotive": {
		".job-description",
		"[class*='JobDescription']",
		"article",
	},
	"Himalayas": {
		"[class*='description']",
		"[class*='JobDescription']",
		"article",
	},
	"Working Nomads": {
		".job-description",
		"article",
		"main",
	},
}

// genericSelectors are ordered from most to least specific.
var genericSelectors = []string{
	".job-description",
	"#job-description",
	"[class*='job-description']",
	"[class*='jobDescription']",
	"article",
	"main",
}

// noisePhrases mark elements that are widgets rather than the posting body.
var noisePhrases = []string{
	"learn the skills employers are hiring for",
	"powered by learnisa",
	"related jobs",
	"sign in to apply",
	"create an account",
}

// Fetcher enriches listings with the real posting body. Misses are silent:
// a listing that cannot be enriched keeps its summary and is scored on that.
type Fetcher struct {
	renderer browse.Renderer
	logger   *slog.Logger
}

// NewFetcher creates a fetcher sharing the run's renderer.
func NewFetcher(renderer browse.Renderer, logger *slog.Logger) *Fetcher {
	return &Fetcher{renderer: renderer, logger: logger}
}

// Enrich visits the listing page and swaps in the first acceptable body
// text. Listings that already carry a usable description (feed-sourced ones
// do) are returned untouched without a page visit.
func (f *Fetcher) Enrich(ctx context.Context, listing model.JobListing) model.JobListing {
	if len(listing.Description) >= model.MinUsableDescription {
		return listing
	}
	if listing.Link == "" {
		return listing
	}

	doc, err := f.renderer.Render(ctx, listing.Link)
	if err != nil {
		f.logger.Debug("detail fetch failed", "link", listing.Link, "error", err)
		return listing
	}

	selectors := append(append([]string{}, sourceSelectors[listing.Source]...), genericSelectors...)
	text, ok := extract.FirstAcceptedText(doc, selectors, minAcceptLen, noisePhrases)
	if !ok {
		f.logger.Debug("no description extracted", "link", listing.Link, "source", listing.Source)
		return listing
	}

	if len(text) > model.MaxDescription {
		text = text[:model.MaxDescription]
	}
	listing.Description = text
	return listing
}
