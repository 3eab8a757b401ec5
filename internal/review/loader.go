// Package review is an interactive browser for a saved shortlist.
package review

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// LoadShortlist reads a shortlist JSON file written by a digest run.
func LoadShortlist(path string) ([]model.ScoredListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shortlist: %w", err)
	}

	var shortlist []model.ScoredListing
	if err := json.Unmarshal(data, &shortlist); err != nil {
		return nil, fmt.Errorf("parse shortlist %s: %w", path, err)
	}
	return shortlist, nil
}
