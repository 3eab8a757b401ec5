// Package pipeline runs one digest pass: discover, dedupe, enrich, score,
// rank.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/jwesterfield/jobdigest/internal/model"
	"github.com/jwesterfield/jobdigest/internal/rank"
)

// Enricher fills in a listing's full description where the source only gave
// a blurb. Enrichment is best effort and never fails a listing.
type Enricher interface {
	Enrich(ctx context.Context, listing model.JobListing) model.JobListing
}

// Scorer produces a fit assessment for one listing.
type Scorer interface {
	Score(ctx context.Context, listing model.JobListing) (model.FitAssessment, error)
}

// Pipeline wires the stages of a digest run. Sources are tried in order and
// a broken source degrades the run instead of aborting it.
type Pipeline struct {
	adapters      []model.SourceAdapter
	enricher      Enricher
	scorer        Scorer
	detailCap     int
	shortlistSize int
	logger        *slog.Logger
}

// New assembles a pipeline from its stages.
func New(adapters []model.SourceAdapter, enricher Enricher, scorer Scorer, detailCap, shortlistSize int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		adapters:      adapters,
		enricher:      enricher,
		scorer:        scorer,
		detailCap:     detailCap,
		shortlistSize: shortlistSize,
		logger:        logger,
	}
}

// Run executes one full pass and returns the ranked shortlist. Individual
// source and scoring failures are logged and absorbed; Run itself fails only
// on context cancellation.
func (p *Pipeline) Run(ctx context.Context) ([]model.ScoredListing, error) {
	var discovered []model.JobListing
	for _, adapter := range p.adapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		listings, err := adapter.Discover(ctx)
		if err != nil {
			p.logger.Warn("source unavailable", "source", adapter.Name(), "error", err)
			continue
		}
		p.logger.Info("source discovered", "source", adapter.Name(), "listings", len(listings))
		discovered = append(discovered, listings...)
	}

	unique := Dedupe(discovered)
	p.logger.Info("deduplicated", "before", len(discovered), "after", len(unique))

	if len(unique) > p.detailCap {
		p.logger.Info("capping detail fetch", "cap", p.detailCap, "dropped", len(unique)-p.detailCap)
		unique = unique[:p.detailCap]
	}

	for i, listing := range unique {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		unique[i] = p.enricher.Enrich(ctx, listing)
	}

	var scored []model.ScoredListing
	for _, listing := range unique {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assessment, err := p.scorer.Score(ctx, listing)
		if err != nil {
			p.logger.Warn("scoring failed, dropping listing", "title", listing.Title, "error", err)
			continue
		}
		p.logger.Debug("scored", "title", listing.Title, "fit", assessment.FitScore)
		scored = append(scored, model.ScoredListing{Listing: listing, Assessment: assessment})
	}

	shortlist := rank.Shortlist(scored, p.shortlistSize)
	p.logger.Info("run complete", "scored", len(scored), "shortlisted", len(shortlist))
	return shortlist, nil
}

// Dedupe drops listings with empty links and keeps the first listing seen
// for each link. Discovery order decides the winner, so sources earlier in
// the adapter list take precedence.
func Dedupe(listings []model.JobListing) []model.JobListing {
	seen := make(map[string]bool, len(listings))
	var unique []model.JobListing
	for _, l := range listings {
		if l.Link == "" || seen[l.Link] {
			continue
		}
		seen[l.Link] = true
		unique = append(unique, l)
	}
	return unique
}
