// Package menu runs the interactive job search session.
package menu

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/pipeline"
	"github.com/amishk599/jobparser/internal/rank"
)

// Searcher runs one aggregated search.
type Searcher interface {
	Search(ctx context.Context, query string) (pipeline.Session, error)
}

// UI is the set of interactions the session needs from the terminal.
type UI interface {
	// Choose returns the chosen option index, or -1 if the user backed out.
	Choose(title string, options []Option) (int, error)
	// Prompt returns validated input; ok is false if the user cancelled.
	Prompt(title, placeholder string, validate func(string) error) (string, bool, error)
	Load(ctx context.Context, label string, fn func(ctx context.Context) (pipeline.Session, error)) (pipeline.Session, error)
	Show(title string, vacancies []model.Vacancy) error
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

const (
	actionSearch = iota
	actionShow
	actionSave
	actionExit
)

var mainOptions = []Option{
	{Key: "1", Label: `Search vacancies on "HeadHunter" and "SuperJob"`},
	{Key: "2", Label: "Show found vacancies"},
	{Key: "3", Label: "Save found vacancies to file"},
	{Key: "0", Label: "Exit"},
}

var sortOptions = []Option{
	{Key: "1", Label: "Sort by publication date"},
	{Key: "2", Label: "Sort by salary"},
}

var sortKeys = []rank.Key{rank.ByDate, rank.BySalary}

// App is one interactive session. The current search lives in a Session
// value that each step receives and returns.
type App struct {
	searcher Searcher
	store    model.VacancyStore
	ui       UI
	logger   *slog.Logger
}

// NewApp wires an interactive session.
func NewApp(searcher Searcher, store model.VacancyStore, ui UI, logger *slog.Logger) *App {
	return &App{
		searcher: searcher,
		store:    store,
		ui:       ui,
		logger:   logger,
	}
}

// Run shows the main menu until the user exits.
func (a *App) Run(ctx context.Context) error {
	var sess pipeline.Session
	for {
		choice, err := a.ui.Choose("Job search: choose an action", mainOptions)
		if err != nil {
			return err
		}

		switch choice {
		case actionSearch:
			next, err := a.search(ctx, sess)
			if err != nil {
				a.logger.Error("search failed", "error", err)
				a.ui.Error(fmt.Sprintf("Search failed: %v", err))
				continue
			}
			sess = next
		case actionShow:
			if err := a.show(sess); err != nil {
				return err
			}
		case actionSave:
			a.save(sess)
		case actionExit, -1:
			a.ui.Info("Thank you for using the job search. Good luck!")
			return nil
		}
	}
}

// search runs one query and ranks the result. A cancelled step returns prev
// unchanged.
func (a *App) search(ctx context.Context, prev pipeline.Session) (pipeline.Session, error) {
	query, ok, err := a.ui.Prompt("Enter the job title to search for:", "e.g. повар", ValidateQuery)
	if err != nil || !ok {
		return prev, err
	}

	found, err := a.ui.Load(ctx, fmt.Sprintf("Searching vacancies for %q", query), func(ctx context.Context) (pipeline.Session, error) {
		return a.searcher.Search(ctx, query)
	})
	if err != nil {
		return prev, err
	}

	raw, ok, err := a.ui.Prompt("How many vacancies to keep in the top list?", "10", func(s string) error {
		_, err := ParseTopN(s)
		return err
	})
	if err != nil {
		return prev, err
	}
	if !ok {
		return found, nil
	}
	topN, _ := ParseTopN(raw)

	choice, err := a.ui.Choose("Choose the sort order", sortOptions)
	if err != nil {
		return prev, err
	}
	if choice < 0 {
		return found, nil
	}

	ranked, res, err := found.Rank(sortKeys[choice], topN)
	if err != nil {
		return found, err
	}
	if res.Shortfall {
		a.ui.Warn(fmt.Sprintf("Vacancies found in total: %d", res.Found))
	}
	a.ui.Info(fmt.Sprintf("Top %d vacancies ready. Choose \"Show found vacancies\" to view them.", len(ranked.Vacancies)))
	return ranked, nil
}

func (a *App) show(sess pipeline.Session) error {
	if sess.Empty() {
		a.ui.Warn("No vacancies to show. Try changing the search terms!")
		return nil
	}
	return a.ui.Show(fmt.Sprintf("Vacancies for %q", sess.Query), sess.Vacancies)
}

func (a *App) save(sess pipeline.Session) {
	if sess.Empty() {
		a.ui.Warn("No vacancies to save. Try changing the search terms!")
		return
	}
	n, err := sess.Save(a.store)
	if err != nil {
		a.logger.Error("save failed", "saved", n, "error", err)
		a.ui.Error(fmt.Sprintf("Saving failed after %d vacancies: %v", n, err))
		return
	}
	a.ui.Info(fmt.Sprintf("Saved %d vacancies.", n))
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 0, 0, 2)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 0, 0, 2)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 0, 0, 2)
)

// TeaUI implements UI with bubbletea programs.
type TeaUI struct {
	out io.Writer
}

// Ensure TeaUI implements UI.
var _ UI = (*TeaUI)(nil)

// NewTeaUI returns a terminal UI that prints messages to out.
func NewTeaUI(out io.Writer) *TeaUI {
	return &TeaUI{out: out}
}

func (u *TeaUI) Choose(title string, options []Option) (int, error) {
	return RunPicker(title, options)
}

func (u *TeaUI) Prompt(title, placeholder string, validate func(string) error) (string, bool, error) {
	return RunPrompt(title, placeholder, validate)
}

func (u *TeaUI) Load(ctx context.Context, label string, fn func(ctx context.Context) (pipeline.Session, error)) (pipeline.Session, error) {
	return RunLoader(ctx, label, fn)
}

func (u *TeaUI) Show(title string, vacancies []model.Vacancy) error {
	return RunResults(title, vacancies)
}

func (u *TeaUI) Info(msg string)  { fmt.Fprintln(u.out, infoStyle.Render(msg)) }
func (u *TeaUI) Warn(msg string)  { fmt.Fprintln(u.out, warnStyle.Render(msg)) }
func (u *TeaUI) Error(msg string) { fmt.Fprintln(u.out, errorStyle.Render(msg)) }
