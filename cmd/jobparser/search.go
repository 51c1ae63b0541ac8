package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobparser/internal/menu"
	"github.com/amishk599/jobparser/internal/rank"
	"github.com/amishk599/jobparser/internal/store"
)

var (
	searchQuery string
	searchTop   int
	searchSort  string
	searchSave  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search once, print the top list, exit",
	Long:  "One-shot search: queries every enabled board, ranks the relevant vacancies and prints them as a table.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "job title to search for")
	searchCmd.Flags().IntVarP(&searchTop, "top", "n", 0, "number of vacancies to keep (default: search.top_n from config)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "sort key: date or salary (default: search.sort from config)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "append the listed vacancies to the store")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	query := searchQuery
	if len(args) == 1 {
		query = args[0]
	}
	if err := menu.ValidateQuery(query); err != nil {
		return err
	}

	topN := cfg.Search.TopN
	if searchTop != 0 {
		topN = searchTop
	}
	key := cfg.Search.SortKey
	if searchSort != "" {
		if key, err = rank.ParseKey(searchSort); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := buildAggregator(cfg, logger).Search(ctx, query)
	if err != nil {
		logger.Error("search failed", "query", query, "error", err)
		os.Exit(1)
	}

	ranked, res, err := sess.Rank(key, topN)
	if err != nil {
		return err
	}
	if res.Shortfall {
		pterm.Warning.Println(res.Notice())
	}
	if ranked.Empty() {
		pterm.Info.Println("No vacancies found. Try changing the search terms!")
		return nil
	}

	data := pterm.TableData{{"#", "Title", "Salary", "Published", "Link"}}
	for i, v := range ranked.Vacancies {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			v.Title,
			menu.FormatSalary(v.Compensation),
			v.DatePublished,
			v.Reference,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	if !searchSave {
		return nil
	}

	vacancyStore, closer, err := store.Open(cfg.Storage.Type, cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	n, err := ranked.Save(vacancyStore)
	if err != nil {
		return fmt.Errorf("saving vacancies: %w", err)
	}
	pterm.Success.Printfln("Saved %d vacancies to %s", n, cfg.Storage.Path)
	return nil
}
