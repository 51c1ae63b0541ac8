package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobparser/internal/adapter"
	"github.com/amishk599/jobparser/internal/config"
	"github.com/amishk599/jobparser/internal/filter"
	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/pipeline"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobparser",
	Short: "Search HeadHunter and SuperJob vacancies",
	Long:  "jobparser searches HeadHunter and SuperJob at once, keeps rouble-priced vacancies that match your query and ranks them by salary or date.",
	// With no subcommand, open the interactive menu.
	RunE:         runMenu,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; the key may come from the real environment.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBPARSER_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBPARSER_CONFIG env var > "./config.yaml" > built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("JOBPARSER_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat("config.yaml"); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = "config.yaml"
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// buildSources creates the enabled job board adapters in merge order:
// HeadHunter first, then SuperJob.
func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.VacancySource {
	var sources []model.VacancySource
	if hh := cfg.Sources.HeadHunter; hh.Enabled {
		sources = append(sources, adapter.NewHeadHunterAdapter(hh.BaseURL, hh.PerPage, httpClient))
	}
	if sj := cfg.Sources.SuperJob; sj.Enabled {
		if sj.APIKey == "" {
			logger.Warn("superjob api key is empty; set " + adapter.SuperJobKeyEnv)
		}
		sources = append(sources, adapter.NewSuperJobAdapter(sj.BaseURL, sj.APIKey, sj.PerPage, httpClient))
	}
	for _, s := range sources {
		logger.Debug("registered source", "name", s.Name())
	}
	return sources
}

func buildAggregator(cfg *config.Config, logger *slog.Logger) *pipeline.Aggregator {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	return pipeline.NewAggregator(buildSources(cfg, httpClient, logger), filter.NewTitleFilter(), logger)
}
