// Package notifier delivers the finished shortlist, either to the log or as
// an HTML email digest.
package notifier

import (
	"log/slog"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the shortlist to the given logger as structured
// messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each shortlisted job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each entry with its rank, score, and match notes. Returns nil
// (stdout logging does not fail).
func (n *LogNotifier) Notify(shortlist []model.ScoredListing) error {
	if len(shortlist) == 0 {
		n.logger.Info("no jobs made the shortlist")
		return nil
	}
	for i, s := range shortlist {
		args := []any{
			"rank", i + 1,
			"score", s.Assessment.FitScore,
			"title", s.Listing.Title,
			"source", s.Listing.Source,
			"link", s.Listing.Link,
			"salary", salaryDisplay(s),
			"key_match", s.Assessment.KeyMatch,
		}
		if s.Assessment.HasConcern() {
			args = append(args, "concern", s.Assessment.Concern)
		}
		n.logger.Info("shortlisted job", args...)
	}
	return nil
}

// salaryDisplay prefers the LLM's estimate, then the scraped text.
func salaryDisplay(s model.ScoredListing) string {
	if s.Assessment.EstimatedSalary != "" {
		return s.Assessment.EstimatedSalary
	}
	if s.Listing.SalaryText != "" {
		return s.Listing.SalaryText
	}
	return "Not listed"
}
