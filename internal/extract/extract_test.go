package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestFirstMatching_SelectorOrderWins(t *testing.T) {
	doc := docFrom(t, `<ul><li class="job-item">A</li><li class="job-row">B</li></ul>`)

	sel := FirstMatching(doc, []string{".job-item", "li[class*='job']"})
	if sel == nil {
		t.Fatal("expected a match")
	}
	if sel.Length() != 1 {
		t.Fatalf("expected first selector's single match, got %d nodes", sel.Length())
	}
	if got := strings.TrimSpace(sel.Text()); got != "A" {
		t.Errorf("matched text = %q, want A", got)
	}
}

func TestFirstMatching_FallsThroughToLaterSelector(t *testing.T) {
	doc := docFrom(t, `<ul><li class="job-row">B</li><li class="job-row">C</li></ul>`)

	sel := FirstMatching(doc, []string{".job-item", "li[class*='job']"})
	if sel == nil || sel.Length() != 2 {
		t.Fatalf("expected 2 nodes from fallback selector, got %v", sel)
	}
}

func TestFirstMatching_NoMatch(t *testing.T) {
	doc := docFrom(t, `<div>nothing here</div>`)

	if sel := FirstMatching(doc, []string{".job-item", "article"}); sel != nil {
		t.Errorf("expected nil, got %d nodes", sel.Length())
	}
}

func TestFirstAcceptedText_RejectsNoiseThenAcceptsNext(t *testing.T) {
	long := strings.Repeat("real job description content ", 10)
	html := `<div>
		<div class="job-description">Sign in to apply and also ` + long + `</div>
		<article>` + long + `</article>
	</div>`
	doc := docFrom(t, html)

	text, ok := FirstAcceptedText(doc,
		[]string{".job-description", "article"},
		150,
		[]string{"sign in to apply"},
	)
	if !ok {
		t.Fatal("expected an accepted candidate")
	}
	if strings.Contains(strings.ToLower(text), "sign in to apply") {
		t.Error("noisy candidate should have been rejected")
	}
	if !strings.Contains(text, "real job description content") {
		t.Errorf("unexpected accepted text: %q", text)
	}
}

func TestFirstAcceptedText_RejectsShortCandidates(t *testing.T) {
	doc := docFrom(t, `<article>too short</article>`)

	if _, ok := FirstAcceptedText(doc, []string{"article"}, 150, nil); ok {
		t.Error("short candidate should not be accepted")
	}
}

func TestFirstAcceptedText_DenyIsCaseInsensitive(t *testing.T) {
	long := strings.Repeat("words ", 40) + "RELATED JOBS"
	doc := docFrom(t, `<article>`+long+`</article>`)

	if _, ok := FirstAcceptedText(doc, []string{"article"}, 150, []string{"related jobs"}); ok {
		t.Error("denylist match should be case-insensitive")
	}
}

func TestFirstAcceptedText_WalksElementsInDocumentOrder(t *testing.T) {
	clean := strings.Repeat("posting body text ", 15)
	html := `<div>
		<article>create an account ` + strings.Repeat("filler ", 40) + `</article>
		<article>` + clean + `</article>
	</div>`
	doc := docFrom(t, html)

	text, ok := FirstAcceptedText(doc, []string{"article"}, 150, []string{"create an account"})
	if !ok {
		t.Fatal("expected second article to be accepted")
	}
	if !strings.Contains(text, "posting body text") {
		t.Errorf("accepted wrong element: %q", text)
	}
}
