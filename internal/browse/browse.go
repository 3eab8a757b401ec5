// Package browse wraps the page-rendering capability consumed by page
// adapters and the detail fetcher: navigate to a URL, let dynamic content
// settle, and hand the resulting document back for selector queries.
package browse

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Renderer renders one URL into a queryable document. Implementations own
// whatever session state they need; callers share a single Renderer per run
// so at most one render engine is alive at a time.
type Renderer interface {
	Render(ctx context.Context, url string) (*goquery.Document, error)
	Close() error
}
