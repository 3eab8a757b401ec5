package notifier

import (
	"strings"
	"testing"

	"github.com/jwesterfield/jobdigest/internal/model"
)

func shortlistFixture() []model.ScoredListing {
	return []model.ScoredListing{
		{
			Listing: model.JobListing{
				Title:      "Senior Backend Engineer",
				Company:    "Acme Corp",
				Link:       "https://example.com/jobs/1",
				SalaryText: "$100k-$140k",
				Source:     "Remotive",
			},
			Assessment: model.FitAssessment{
				FitScore:        9,
				EstimatedSalary: "$110k-$130k",
				FitSummary:      "Deep Go and Kubernetes overlap.",
				KeyMatch:        "Five years of Go services",
				Concern:         "None",
			},
		},
		{
			Listing: model.JobListing{
				Title:  "Platform Engineer",
				Link:   "https://example.com/jobs/2",
				Source: "Himalayas",
			},
			Assessment: model.FitAssessment{
				FitScore:   6,
				FitSummary: "Decent platform overlap.",
				KeyMatch:   "Infrastructure background",
				Concern:    "Wants more Terraform than the resume shows",
			},
		},
	}
}

func TestRenderDigest(t *testing.T) {
	html, err := renderDigest(shortlistFixture(), "March 15, 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"March 15, 2026",
		"2 matched jobs",
		"Senior Backend Engineer",
		"https://example.com/jobs/1",
		"Acme Corp",
		"$110k-$130k", // estimate preferred over scraped text
		"9/10",
		"Strong fit",
		"#27ae60",
		"Platform Engineer",
		"Decent fit",
		"#f39c12",
		"Wants more Terraform than the resume shows",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("digest missing %q", want)
		}
	}

	// The first card's concern is "None" and must not render a concern row.
	firstCard := html[:strings.Index(html, "Platform Engineer")]
	if strings.Contains(firstCard, "&#9888;") {
		t.Error("no-concern card should not render a concern row")
	}
}

func TestRenderDigest_EscapesListingText(t *testing.T) {
	shortlist := shortlistFixture()[:1]
	shortlist[0].Listing.Title = `<script>alert("x")</script>`

	html, err := renderDigest(shortlist, "March 15, 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("listing text must be HTML-escaped")
	}
}

func TestSalaryDisplay(t *testing.T) {
	s := model.ScoredListing{}
	if got := salaryDisplay(s); got != "Not listed" {
		t.Errorf("empty = %q", got)
	}

	s.Listing.SalaryText = "$90k"
	if got := salaryDisplay(s); got != "$90k" {
		t.Errorf("scraped = %q", got)
	}

	s.Assessment.EstimatedSalary = "$95k-$105k"
	if got := salaryDisplay(s); got != "$95k-$105k" {
		t.Errorf("estimate = %q", got)
	}
}
