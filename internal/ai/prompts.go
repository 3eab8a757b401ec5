package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/fit_assessment.md
var fitAssessmentPromptRaw string

// FitAssessmentTemplate is the parsed prompt template for resume fit
// scoring. Parsed once at package init; reused on every Score call.
var FitAssessmentTemplate = template.Must(template.New("fit_assessment").Parse(fitAssessmentPromptRaw))
