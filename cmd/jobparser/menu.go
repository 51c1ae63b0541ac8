package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobparser/internal/menu"
	"github.com/amishk599/jobparser/internal/store"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive search menu",
	Long:  "Search, rank, show and save vacancies from an interactive terminal menu.",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	vacancyStore, closer, err := store.Open(cfg.Storage.Type, cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Any log output while a bubbletea program owns the terminal corrupts the
	// display, so the session logs only in debug mode.
	sessionLogger := logger
	if !debug {
		sessionLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := menu.NewApp(buildAggregator(cfg, sessionLogger), vacancyStore, menu.NewTeaUI(os.Stdout), sessionLogger)
	return app.Run(ctx)
}
