package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a digest run.
type Config struct {
	Profile      ProfileConfig
	Sources      []SourceConfig
	Pipeline     PipelineConfig
	AI           AIConfig
	Browser      BrowserConfig
	Notification NotificationConfig
	Output       OutputConfig
	Schedule     ScheduleConfig
}

// ProfileConfig is the fixed candidate profile every listing is scored
// against.
type ProfileConfig struct {
	Resume    string
	SalaryMin int
	SalaryMax int
}

// SourceConfig describes a single job source to pull from.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"` // "feed" or "page"
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// PipelineConfig holds the run-bounding knobs.
type PipelineConfig struct {
	RecencyDays   int // feed entries older than this are skipped
	DetailCap     int // max listings carried into detail fetch and scoring
	ShortlistSize int // K, the final shortlist length
}

// AIConfig points the scoring client at a text-generation endpoint.
type AIConfig struct {
	Provider    string // "ollama" or "openai"
	URL         string
	Model       string
	APIKey      string // expanded from env by Load; openai only
	Timeout     time.Duration
	Temperature float64
}

// BrowserConfig tunes the shared page renderer. The settle delay is how long
// a page gets to finish loading dynamic content; it is a tunable wait, not a
// completion guarantee.
type BrowserConfig struct {
	SettleDelay  time.Duration
	NavTimeout   time.Duration
	UserAgent    string
	MinHostDelay time.Duration // courtesy gap between navigations to one host
}

// NotificationConfig controls which digest sink is used and its settings.
type NotificationConfig struct {
	Type  string      `yaml:"type"` // "log" or "email"
	Email EmailConfig `yaml:"email"`
}

// EmailConfig holds SMTP settings for the email digest.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// OutputConfig controls the optional shortlist JSON file, which the review
// TUI reads.
type OutputConfig struct {
	File string `yaml:"file"`
}

// ScheduleConfig applies to the `start` command only.
type ScheduleConfig struct {
	Every time.Duration
}

const (
	defaultOllamaURL    = "http://localhost:11434"
	defaultSalaryMin    = 80000
	defaultSalaryMax    = 130000
	defaultRecencyDays  = 30
	defaultDetailCap    = 40
	defaultShortlist    = 10
	defaultAITimeout    = 300 * time.Second
	defaultTemperature  = 0.1
	defaultSettleDelay  = 3 * time.Second
	defaultNavTimeout   = 40 * time.Second
	defaultHostDelay    = 2 * time.Second
	defaultSMTPPort     = 465
	defaultScheduleGap  = 24 * time.Hour
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations and
// temperature as strings).
type rawConfig struct {
	Profile      rawProfileConfig   `yaml:"profile"`
	Sources      []SourceConfig     `yaml:"sources"`
	Pipeline     rawPipelineConfig  `yaml:"pipeline"`
	AI           rawAIConfig        `yaml:"ai"`
	Browser      rawBrowserConfig   `yaml:"browser"`
	Notification NotificationConfig `yaml:"notification"`
	Output       OutputConfig       `yaml:"output"`
	Schedule     rawScheduleConfig  `yaml:"schedule"`
}

type rawProfileConfig struct {
	Resume    string `yaml:"resume"`
	SalaryMin int    `yaml:"salary_min"`
	SalaryMax int    `yaml:"salary_max"`
}

type rawPipelineConfig struct {
	RecencyDays   int `yaml:"recency_days"`
	DetailCap     int `yaml:"detail_cap"`
	ShortlistSize int `yaml:"shortlist_size"`
}

type rawAIConfig struct {
	Provider    string   `yaml:"provider"`
	URL         string   `yaml:"url"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Timeout     string   `yaml:"timeout"`
	Temperature *float64 `yaml:"temperature"`
}

type rawBrowserConfig struct {
	SettleDelay  string `yaml:"settle_delay"`
	NavTimeout   string `yaml:"nav_timeout"`
	UserAgent    string `yaml:"user_agent"`
	MinHostDelay string `yaml:"min_host_delay"`
}

type rawScheduleConfig struct {
	Every string `yaml:"every"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, applies defaults, validates, and returns Config. A run never
// starts half-configured: validation failures abort the load.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Secrets (SMTP password, API key) live in the environment, not the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Profile: ProfileConfig{
			Resume:    raw.Profile.Resume,
			SalaryMin: raw.Profile.SalaryMin,
			SalaryMax: raw.Profile.SalaryMax,
		},
		Sources: raw.Sources,
		Pipeline: PipelineConfig{
			RecencyDays:   raw.Pipeline.RecencyDays,
			DetailCap:     raw.Pipeline.DetailCap,
			ShortlistSize: raw.Pipeline.ShortlistSize,
		},
		AI: AIConfig{
			Provider: raw.AI.Provider,
			URL:      raw.AI.URL,
			Model:    raw.AI.Model,
			APIKey:   raw.AI.APIKey,
		},
		Browser: BrowserConfig{
			UserAgent: raw.Browser.UserAgent,
		},
		Notification: raw.Notification,
		Output:       raw.Output,
	}

	if cfg.Profile.SalaryMin == 0 {
		cfg.Profile.SalaryMin = defaultSalaryMin
	}
	if cfg.Profile.SalaryMax == 0 {
		cfg.Profile.SalaryMax = defaultSalaryMax
	}
	if cfg.Pipeline.RecencyDays == 0 {
		cfg.Pipeline.RecencyDays = defaultRecencyDays
	}
	if cfg.Pipeline.DetailCap == 0 {
		cfg.Pipeline.DetailCap = defaultDetailCap
	}
	if cfg.Pipeline.ShortlistSize == 0 {
		cfg.Pipeline.ShortlistSize = defaultShortlist
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "ollama"
	}
	if cfg.AI.URL == "" {
		cfg.AI.URL = defaultOllamaURL
	}
	if raw.AI.Temperature != nil {
		cfg.AI.Temperature = *raw.AI.Temperature
	} else {
		cfg.AI.Temperature = defaultTemperature
	}
	if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = defaultUserAgent
	}
	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "log"
	}
	if cfg.Notification.Email.Port == 0 {
		cfg.Notification.Email.Port = defaultSMTPPort
	}

	cfg.AI.Timeout, err = parseDuration(raw.AI.Timeout, defaultAITimeout, "ai.timeout")
	if err != nil {
		return nil, err
	}
	cfg.Browser.SettleDelay, err = parseDuration(raw.Browser.SettleDelay, defaultSettleDelay, "browser.settle_delay")
	if err != nil {
		return nil, err
	}
	cfg.Browser.NavTimeout, err = parseDuration(raw.Browser.NavTimeout, defaultNavTimeout, "browser.nav_timeout")
	if err != nil {
		return nil, err
	}
	cfg.Browser.MinHostDelay, err = parseDuration(raw.Browser.MinHostDelay, defaultHostDelay, "browser.min_host_delay")
	if err != nil {
		return nil, err
	}
	cfg.Schedule.Every, err = parseDuration(raw.Schedule.Every, defaultScheduleGap, "schedule.every")
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration, field string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	if cfg.Profile.Resume == "" {
		return fmt.Errorf("profile.resume is required")
	}
	if cfg.Profile.SalaryMin >= cfg.Profile.SalaryMax {
		return fmt.Errorf("profile.salary_min must be below salary_max, got %d >= %d",
			cfg.Profile.SalaryMin, cfg.Profile.SalaryMax)
	}

	enabled := 0
	for _, s := range cfg.Sources {
		if s.Kind != "feed" && s.Kind != "page" {
			return fmt.Errorf("source %q: kind must be \"feed\" or \"page\", got %q", s.Name, s.Kind)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	if cfg.Pipeline.RecencyDays < 0 {
		return fmt.Errorf("pipeline.recency_days must not be negative, got %d", cfg.Pipeline.RecencyDays)
	}
	if cfg.Pipeline.ShortlistSize < 1 {
		return fmt.Errorf("pipeline.shortlist_size must be positive, got %d", cfg.Pipeline.ShortlistSize)
	}

	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	switch cfg.AI.Provider {
	case "ollama":
	case "openai":
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.provider is \"openai\"")
		}
	default:
		return fmt.Errorf("ai.provider must be \"ollama\" or \"openai\", got %q", cfg.AI.Provider)
	}

	switch cfg.Notification.Type {
	case "log":
	case "email":
		e := cfg.Notification.Email
		if e.Host == "" || e.From == "" || e.To == "" {
			return fmt.Errorf("notification.email requires host, from, and to when type is \"email\"")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"email\", got %q", cfg.Notification.Type)
	}

	return nil
}
