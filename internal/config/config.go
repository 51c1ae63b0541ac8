package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobparser/internal/rank"
)

const (
	defaultHeadHunterURL = "https://api.hh.ru"
	defaultSuperJobURL   = "https://api.superjob.ru"
	defaultPageSize      = 50
	defaultStoragePath   = "json_found_vacancies.json"
	defaultTopN          = 10
	defaultHTTPTimeout   = 30 * time.Second
)

// Config is the root configuration for jobparser.
type Config struct {
	HTTPTimeout time.Duration
	Sources     SourcesConfig
	Storage     StorageConfig
	Search      SearchConfig
}

// SourcesConfig configures the job boards that are searched.
type SourcesConfig struct {
	HeadHunter SourceConfig
	SuperJob   SourceConfig
}

// SourceConfig describes one job board endpoint.
type SourceConfig struct {
	Enabled bool
	BaseURL string
	PerPage int    // listings requested per search
	APIKey  string // expanded from env var by Load; SuperJob only
}

// StorageConfig selects where saved vacancies go.
type StorageConfig struct {
	Type string `yaml:"type"` // "jsonl" or "sqlite"
	Path string `yaml:"path"`
}

// SearchConfig holds defaults for non-interactive searches.
type SearchConfig struct {
	TopN    int
	SortKey rank.Key
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	HTTPTimeout string           `yaml:"http_timeout"`
	Sources     rawSourcesConfig `yaml:"sources"`
	Storage     StorageConfig    `yaml:"storage"`
	Search      rawSearchConfig  `yaml:"search"`
}

type rawSourcesConfig struct {
	HeadHunter rawSourceConfig `yaml:"headhunter"`
	SuperJob   rawSourceConfig `yaml:"superjob"`
}

type rawSourceConfig struct {
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	PerPage int    `yaml:"per_page"`
	APIKey  string `yaml:"api_key"`
}

type rawSearchConfig struct {
	TopN int    `yaml:"top_n"`
	Sort string `yaml:"sort"`
}

// Default returns the configuration used when no config file is present.
// The SuperJob key is read from SUPERJOB_API_KEY.
func Default() *Config {
	cfg, err := build(rawConfig{})
	if err != nil {
		// The zero raw config only carries defaults.
		panic(err)
	}
	return cfg
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(raw rawConfig) (*Config, error) {
	timeout := defaultHTTPTimeout
	if raw.HTTPTimeout != "" {
		var err error
		timeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}

	sortKey := rank.BySalary
	if raw.Search.Sort != "" {
		var err error
		sortKey, err = rank.ParseKey(raw.Search.Sort)
		if err != nil {
			return nil, fmt.Errorf("parse search.sort: %w", err)
		}
	}

	topN := raw.Search.TopN
	if topN == 0 {
		topN = defaultTopN
	}

	storage := raw.Storage
	if storage.Type == "" {
		storage.Type = "jsonl"
	}
	if storage.Path == "" {
		storage.Path = defaultStoragePath
		if storage.Type == "sqlite" {
			storage.Path = "vacancies.db"
		}
	}

	superJobKey := raw.Sources.SuperJob.APIKey
	if superJobKey == "" {
		superJobKey = os.Getenv("SUPERJOB_API_KEY")
	}

	return &Config{
		HTTPTimeout: timeout,
		Sources: SourcesConfig{
			HeadHunter: source(raw.Sources.HeadHunter, defaultHeadHunterURL, ""),
			SuperJob:   source(raw.Sources.SuperJob, defaultSuperJobURL, superJobKey),
		},
		Storage: storage,
		Search: SearchConfig{
			TopN:    topN,
			SortKey: sortKey,
		},
	}, nil
}

func source(raw rawSourceConfig, defaultURL, apiKey string) SourceConfig {
	sc := SourceConfig{
		Enabled: true, // boards are on unless disabled explicitly
		BaseURL: raw.BaseURL,
		PerPage: raw.PerPage,
		APIKey:  apiKey,
	}
	if raw.Enabled != nil {
		sc.Enabled = *raw.Enabled
	}
	if sc.BaseURL == "" {
		sc.BaseURL = defaultURL
	}
	if sc.PerPage == 0 {
		sc.PerPage = defaultPageSize
	}
	return sc
}

func validate(cfg *Config) error {
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if !cfg.Sources.HeadHunter.Enabled && !cfg.Sources.SuperJob.Enabled {
		return fmt.Errorf("at least one source must be enabled")
	}
	for name, sc := range map[string]SourceConfig{
		"headhunter": cfg.Sources.HeadHunter,
		"superjob":   cfg.Sources.SuperJob,
	} {
		if sc.PerPage < 1 || sc.PerPage > 100 {
			return fmt.Errorf("sources.%s.per_page must be between 1 and 100, got %d", name, sc.PerPage)
		}
	}
	if cfg.Search.TopN < 1 {
		return fmt.Errorf("search.top_n must be positive, got %d", cfg.Search.TopN)
	}
	switch cfg.Storage.Type {
	case "jsonl", "sqlite":
	default:
		return fmt.Errorf("storage.type must be \"jsonl\" or \"sqlite\", got %q", cfg.Storage.Type)
	}
	return nil
}
