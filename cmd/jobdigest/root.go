package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwesterfield/jobdigest/internal/ai"
	"github.com/jwesterfield/jobdigest/internal/browse"
	"github.com/jwesterfield/jobdigest/internal/config"
	"github.com/jwesterfield/jobdigest/internal/model"
	"github.com/jwesterfield/jobdigest/internal/notifier"
	"github.com/jwesterfield/jobdigest/internal/source"
)

var (
	cfgPath string
	debug   bool
	outPath string
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "Remote job digest, scored against your resume",
	Long:  "Jobdigest pulls remote job boards, scores each posting against your resume with an LLM, and delivers a ranked shortlist.",
	// Default to `run` so that `jobdigest` with no args does one digest pass.
	RunE: runDigest,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "", "write the shortlist JSON to this path (default: output.file from config)")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "email":
		logger.Info("using email notifier", "to", cfg.Notification.Email.To)
		return notifier.NewEmailNotifier(cfg.Notification.Email, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func setupProvider(cfg *config.Config) ai.Provider {
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	switch cfg.AI.Provider {
	case "openai":
		return ai.NewOpenAIProvider(cfg.AI.URL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature, httpClient)
	default:
		return ai.NewOllamaProvider(cfg.AI.URL, cfg.AI.Model, cfg.AI.Temperature, httpClient)
	}
}

// buildAdapters creates one adapter per enabled source. Feed adapters go
// first: feeds carry full descriptions, so on duplicate links the feed copy
// should win the dedup pass.
func buildAdapters(cfg *config.Config, renderer browse.Renderer, logger *slog.Logger) []model.SourceAdapter {
	var feeds, pages []model.SourceAdapter
	for _, src := range cfg.Sources {
		if !src.Enabled {
			continue
		}
		switch src.Kind {
		case "feed":
			feeds = append(feeds, source.NewFeedAdapter(src.Name, src.URL, cfg.Pipeline.RecencyDays))
		case "page":
			pages = append(pages, source.NewPageAdapter(src.Name, src.URL, renderer))
		default:
			logger.Warn("unsupported source kind, skipping", "source", src.Name, "kind", src.Kind)
			continue
		}
		logger.Info("registered source", "name", src.Name, "kind", src.Kind)
	}
	return append(feeds, pages...)
}
