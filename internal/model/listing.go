package model

import (
	"context"
	"strings"
)

// Limits shared across pipeline stages.
const (
	// MaxDescription caps a listing's description wherever it is populated,
	// whether from a feed body or a rendered detail page.
	MaxDescription = 3000

	// MinUsableDescription is the length below which a listing is sent
	// through the detail fetcher for enrichment.
	MinUsableDescription = 200
)

// JobListing is the unified representation of one discovered posting,
// regardless of which source produced it. After normalization the Link
// uniquely identifies a listing for the rest of the run.
type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Link        string `json:"link"`
	SalaryText  string `json:"salary_text,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
}

// FitAssessment is the scoring verdict for one listing. Produced at most
// once per listing; a listing whose scoring call fails never gets one and
// drops out of ranking.
type FitAssessment struct {
	FitScore        int    `json:"fit_score"`
	IsBackend       bool   `json:"is_backend"`
	IsRemote        bool   `json:"is_remote"`
	EstimatedSalary string `json:"estimated_salary"`
	SalaryInRange   bool   `json:"salary_in_range"`
	FitSummary      string `json:"fit_summary"`
	KeyMatch        string `json:"key_match"`
	Concern         string `json:"concern"`
}

// HasConcern reports whether the model flagged a real concern. The prompt
// asks for the literal sentinel "None" when there is nothing to flag.
func (a FitAssessment) HasConcern() bool {
	return a.Concern != "" && !strings.EqualFold(a.Concern, "none")
}

// ScoredListing pairs a listing with its verdict for ranking and delivery.
type ScoredListing struct {
	Listing    JobListing    `json:"listing"`
	Assessment FitAssessment `json:"assessment"`
}

// SourceAdapter discovers raw listing candidates from one job source.
// Implementations return whatever they managed to extract; a non-nil error
// is logged by the pipeline and never aborts the run.
type SourceAdapter interface {
	Name() string
	Discover(ctx context.Context) ([]JobListing, error)
}

// Notifier delivers the final shortlist.
type Notifier interface {
	Notify(shortlist []ScoredListing) error
}
