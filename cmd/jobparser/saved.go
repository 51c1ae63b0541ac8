package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobparser/internal/menu"
	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/store"
)

var (
	savedTitle  string
	savedLink   string
	savedSalary int
	savedDate   string
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Work with saved vacancies",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved vacancies matching every given field",
	RunE:  runSavedList,
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete saved vacancies equal to the given one",
	Long:  "Removes every saved vacancy whose title, link, salary and date all equal the given values.",
	RunE:  runSavedDelete,
}

func init() {
	for _, c := range []*cobra.Command{savedListCmd, savedDeleteCmd} {
		c.Flags().StringVar(&savedTitle, "title", "", "vacancy title")
		c.Flags().StringVar(&savedLink, "link", "", "vacancy link")
		c.Flags().IntVar(&savedSalary, "salary", 0, "salary")
		c.Flags().StringVar(&savedDate, "date", "", "publication date (YYYY.MM.DD)")
	}
	for _, f := range []string{"title", "link", "salary", "date"} {
		_ = savedDeleteCmd.MarkFlagRequired(f)
	}
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd, savedDeleteCmd)
}

// criteriaFromFlags builds store criteria from the flags the user set.
func criteriaFromFlags(cmd *cobra.Command) model.Criteria {
	criteria := model.Criteria{}
	if cmd.Flags().Changed("title") {
		criteria["title"] = savedTitle
	}
	if cmd.Flags().Changed("link") {
		criteria["Link"] = savedLink
	}
	if cmd.Flags().Changed("salary") {
		criteria["salary"] = savedSalary
	}
	if cmd.Flags().Changed("date") {
		criteria["Date published"] = savedDate
	}
	return criteria
}

func openStore() (model.VacancyStore, func(), error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	s, closer, err := store.Open(cfg.Storage.Type, cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return s, func() { closer.Close() }, nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	s, closeStore, err := openStore()
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	records, err := s.VacanciesByCriteria(criteriaFromFlags(cmd))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		pterm.Info.Println("No saved vacancies match.")
		return nil
	}

	data := pterm.TableData{{"#", "Title", "Salary", "Published", "Link"}}
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Title,
			menu.FormatSalary(r.Salary),
			r.DatePublished,
			r.Link,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	s, closeStore, err := openStore()
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	v := model.NewVacancy(savedTitle, savedLink, savedSalary, savedDate)
	before, err := s.VacanciesByCriteria(criteriaFromFlags(cmd))
	if err != nil {
		return err
	}
	if err := s.DeleteVacancy(v); err != nil {
		return err
	}
	logger.Info("deleted saved vacancy", "title", v.Title, "link", v.Reference, "removed", len(before))
	return nil
}
