// Package rank applies the admission gate and orders the shortlist.
package rank

import (
	"sort"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// minFitScore is the lowest fit score that survives the admission gate.
const minFitScore = 5

// Admit reports whether a scored listing belongs in the digest. The gate is
// conjunctive: the role must be backend, explicitly remote, and score at
// least minFitScore.
func Admit(s model.ScoredListing) bool {
	return s.Assessment.IsBackend && s.Assessment.IsRemote && s.Assessment.FitScore >= minFitScore
}

// Shortlist filters scored listings through the admission gate, orders them
// by fit score descending, and truncates to at most k entries. The sort is
// stable, so equal scores keep their discovery order.
func Shortlist(scored []model.ScoredListing, k int) []model.ScoredListing {
	var admitted []model.ScoredListing
	for _, s := range scored {
		if Admit(s) {
			admitted = append(admitted, s)
		}
	}

	sort.SliceStable(admitted, func(i, j int) bool {
		return admitted[i].Assessment.FitScore > admitted[j].Assessment.FitScore
	})

	if len(admitted) > k {
		admitted = admitted[:k]
	}
	return admitted
}
