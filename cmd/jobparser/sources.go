package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured job boards",
	Long:  "Reads the config and prints a table of the job boards searched.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-12s %-28s %-9s %s\n", "Board", "Base URL", "Per page", "Status")
	fmt.Println(strings.Repeat("─", 62))

	boards := []struct {
		name    string
		baseURL string
		perPage int
		enabled bool
		note    string
	}{
		{"headhunter", cfg.Sources.HeadHunter.BaseURL, cfg.Sources.HeadHunter.PerPage, cfg.Sources.HeadHunter.Enabled, ""},
		{"superjob", cfg.Sources.SuperJob.BaseURL, cfg.Sources.SuperJob.PerPage, cfg.Sources.SuperJob.Enabled, ""},
	}
	if cfg.Sources.SuperJob.APIKey == "" {
		boards[1].note = " (no api key)"
	}

	enabled := 0
	for _, b := range boards {
		status := "disabled"
		if b.enabled {
			status = "enabled"
			enabled++
		}
		fmt.Printf("%-12s %-28s %-9d %s%s\n", b.name, b.baseURL, b.perPage, status, b.note)
	}

	fmt.Printf("\nStorage: %s (%s)\n", cfg.Storage.Path, cfg.Storage.Type)
	fmt.Printf("Total: %d boards (%d enabled)\n", len(boards), enabled)
	return nil
}
