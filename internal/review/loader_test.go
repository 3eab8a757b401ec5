package review

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwesterfield/jobdigest/internal/model"
)

func TestLoadShortlist_RoundTrip(t *testing.T) {
	shortlist := []model.ScoredListing{
		{
			Listing: model.JobListing{
				Title:  "Senior Backend Engineer",
				Link:   "https://example.com/jobs/1",
				Source: "Remotive",
			},
			Assessment: model.FitAssessment{FitScore: 8, IsBackend: true, IsRemote: true},
		},
	}

	path := filepath.Join(t.TempDir(), "shortlist.json")
	data, err := json.Marshal(shortlist)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadShortlist(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Listing.Title != "Senior Backend Engineer" {
		t.Fatalf("got %+v", got)
	}
	if got[0].Assessment.FitScore != 8 {
		t.Errorf("FitScore = %d, want 8", got[0].Assessment.FitScore)
	}
}

func TestLoadShortlist_MissingFile(t *testing.T) {
	if _, err := LoadShortlist(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadShortlist_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShortlist(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
