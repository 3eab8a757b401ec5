package browse

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/jwesterfield/jobdigest/internal/config"
	"github.com/jwesterfield/jobdigest/internal/ratelimit"
)

// ChromeRenderer drives one shared headless browser tab for the whole run.
// The settle delay gives client-side apps time to paint their listings; it
// is a tunable wait with no load-completion guarantee, so pages slower than
// the delay yield a partial document.
type ChromeRenderer struct {
	cfg     config.BrowserConfig
	limiter *ratelimit.HostLimiter

	once    sync.Once
	tabCtx  context.Context
	cancels []context.CancelFunc
}

// NewChromeRenderer creates a renderer. The browser process launches lazily
// on the first Render, so feed-only runs never pay for a Chrome start.
func NewChromeRenderer(cfg config.BrowserConfig, limiter *ratelimit.HostLimiter) *ChromeRenderer {
	return &ChromeRenderer{cfg: cfg, limiter: limiter}
}

func (r *ChromeRenderer) start() {
	r.once.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.UserAgent(r.cfg.UserAgent),
		)
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
		tabCtx, cancelTab := chromedp.NewContext(allocCtx)
		r.tabCtx = tabCtx
		r.cancels = []context.CancelFunc{cancelTab, cancelAlloc}
	})
}

// Render navigates the shared tab to url, waits out the settle delay, and
// parses the rendered HTML. The navigation timeout bounds each call; a
// cancelled run context is honored before navigation starts.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (*goquery.Document, error) {
	if err := r.limiter.Wait(ctx, url); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.start()

	navCtx, cancel := context.WithTimeout(r.tabCtx, r.cfg.NavTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.cfg.SettleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered %s: %w", url, err)
	}
	return doc, nil
}

// Close shuts the browser down if it was ever started.
func (r *ChromeRenderer) Close() error {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	return nil
}

var _ Renderer = (*ChromeRenderer)(nil)
