package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// promptDescriptionLimit caps how much of the posting body goes into the
// prompt. Local models degrade on very long contexts.
const promptDescriptionLimit = 2000

// fenceMarker matches markdown code fences some models wrap JSON in.
var fenceMarker = regexp.MustCompile("```(?:json)?")

// FitScorer asks an LLM to assess one listing against the candidate's
// resume. One call per listing, no retries: a failed assessment drops the
// listing from the run rather than stalling it.
type FitScorer struct {
	provider    Provider
	resume      string
	salaryRange string
}

// NewFitScorer creates a scorer for a fixed resume and target salary band.
// Min and max are annual USD amounts, e.g. 80000.
func NewFitScorer(provider Provider, resume string, salaryMin, salaryMax int) *FitScorer {
	return &FitScorer{
		provider:    provider,
		resume:      resume,
		salaryRange: fmt.Sprintf("$%dk-$%dk", salaryMin/1000, salaryMax/1000),
	}
}

// promptData is the template payload for one assessment.
type promptData struct {
	Resume      string
	Title       string
	Source      string
	Salary      string
	Description string
	SalaryRange string
}

// Score evaluates one listing. The description falls back to the summary and
// then the title so every listing gets assessed on whatever text survived
// extraction.
func (s *FitScorer) Score(ctx context.Context, listing model.JobListing) (model.FitAssessment, error) {
	description := listing.Description
	if description == "" {
		description = listing.Summary
	}
	if description == "" {
		description = listing.Title
	}
	if len(description) > promptDescriptionLimit {
		description = description[:promptDescriptionLimit]
	}

	salary := listing.SalaryText
	if salary == "" {
		salary = "Not listed"
	}

	var promptBuf bytes.Buffer
	err := FitAssessmentTemplate.Execute(&promptBuf, promptData{
		Resume:      s.resume,
		Title:       listing.Title,
		Source:      listing.Source,
		Salary:      salary,
		Description: description,
		SalaryRange: s.salaryRange,
	})
	if err != nil {
		return model.FitAssessment{}, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := s.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return model.FitAssessment{}, fmt.Errorf("llm complete: %w", err)
	}

	assessment, err := parseAssessment(raw)
	if err != nil {
		return model.FitAssessment{}, fmt.Errorf("parse assessment: %w", err)
	}
	return assessment, nil
}

// rawAssessment uses pointers for the fields a verdict cannot miss, so a
// structurally valid but incomplete JSON object is rejected instead of
// silently zero-scored.
type rawAssessment struct {
	FitScore        *int    `json:"fit_score"`
	IsBackend       *bool   `json:"is_backend"`
	IsRemote        *bool   `json:"is_remote"`
	EstimatedSalary string  `json:"estimated_salary"`
	SalaryInRange   bool    `json:"salary_in_range"`
	FitSummary      string  `json:"fit_summary"`
	KeyMatch        string  `json:"key_match"`
	Concern         string  `json:"concern"`
}

// parseAssessment deserializes the LLM response, tolerating markdown code
// fences around the JSON object.
func parseAssessment(raw string) (model.FitAssessment, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "```") {
		raw = fenceMarker.ReplaceAllString(raw, "")
		raw = strings.Trim(strings.TrimSpace(raw), "`")
	}

	var ra rawAssessment
	if err := json.Unmarshal([]byte(raw), &ra); err != nil {
		return model.FitAssessment{}, fmt.Errorf("unmarshal assessment JSON: %w", err)
	}
	if ra.FitScore == nil {
		return model.FitAssessment{}, fmt.Errorf("assessment missing fit_score")
	}
	if ra.IsBackend == nil || ra.IsRemote == nil {
		return model.FitAssessment{}, fmt.Errorf("assessment missing is_backend/is_remote")
	}

	return model.FitAssessment{
		FitScore:        *ra.FitScore,
		IsBackend:       *ra.IsBackend,
		IsRemote:        *ra.IsRemote,
		EstimatedSalary: ra.EstimatedSalary,
		SalaryInRange:   ra.SalaryInRange,
		FitSummary:      ra.FitSummary,
		KeyMatch:        ra.KeyMatch,
		Concern:         ra.Concern,
	}, nil
}
