package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwesterfield/jobdigest/internal/ai"
	"github.com/jwesterfield/jobdigest/internal/browse"
	"github.com/jwesterfield/jobdigest/internal/config"
	"github.com/jwesterfield/jobdigest/internal/detail"
	"github.com/jwesterfield/jobdigest/internal/model"
	"github.com/jwesterfield/jobdigest/internal/pipeline"
	"github.com/jwesterfield/jobdigest/internal/ratelimit"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one digest pass",
	Long:  "Discovers, scores, and delivers one shortlist, then exits.",
	RunE:  runDigest,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := digest(ctx, cfg, logger); err != nil {
		logger.Error("digest failed", "error", err)
		os.Exit(1)
	}
	return nil
}

// digest executes one full pass: discover, enrich, score, deliver.
func digest(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	limiter := ratelimit.NewHostLimiter(cfg.Browser.MinHostDelay)
	renderer := browse.NewChromeRenderer(cfg.Browser, limiter)
	defer renderer.Close()

	adapters := buildAdapters(cfg, renderer, logger)
	if len(adapters) == 0 {
		return fmt.Errorf("no sources to pull")
	}

	fetcher := detail.NewFetcher(renderer, logger)
	scorer := ai.NewFitScorer(setupProvider(cfg), cfg.Profile.Resume, cfg.Profile.SalaryMin, cfg.Profile.SalaryMax)

	p := pipeline.New(adapters, fetcher, scorer, cfg.Pipeline.DetailCap, cfg.Pipeline.ShortlistSize, logger)
	shortlist, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if path := shortlistPath(cfg); path != "" {
		if err := writeShortlist(path, shortlist); err != nil {
			logger.Error("failed to write shortlist", "path", path, "error", err)
		} else {
			logger.Info("shortlist written", "path", path, "jobs", len(shortlist))
		}
	}

	return setupNotifier(cfg, logger).Notify(shortlist)
}

// shortlistPath prefers the --out flag over the config's output file.
func shortlistPath(cfg *config.Config) string {
	if outPath != "" {
		return outPath
	}
	return cfg.Output.File
}

func writeShortlist(path string, shortlist []model.ScoredListing) error {
	data, err := json.MarshalIndent(shortlist, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal shortlist: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
