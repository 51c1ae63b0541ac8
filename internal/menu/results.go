package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/amishk599/jobparser/internal/model"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	vacancyTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	vacancyLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(16)

	vacancySalaryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))
)

// FormatSalary renders a rouble amount with thousands separators.
func FormatSalary(amount int) string {
	return "от " + humanize.Comma(int64(amount)) + " руб."
}

// RenderVacancy renders one vacancy as a styled block.
func RenderVacancy(i int, v model.Vacancy) string {
	var b strings.Builder
	b.WriteString(vacancyTitleStyle.Render(fmt.Sprintf("%d. %s", i+1, v.Title)))
	b.WriteString("\n")
	b.WriteString(vacancyLabelStyle.Render("Reference") + v.Reference + "\n")
	b.WriteString(vacancyLabelStyle.Render("Salary") + vacancySalaryStyle.Render(FormatSalary(v.Compensation)) + "\n")
	b.WriteString(vacancyLabelStyle.Render("Date published") + v.DatePublished + "\n")
	return b.String()
}

func renderVacancies(vacancies []model.Vacancy) string {
	blocks := make([]string, len(vacancies))
	for i, v := range vacancies {
		blocks[i] = RenderVacancy(i, v)
	}
	return strings.Join(blocks, "\n")
}

type resultsModel struct {
	title    string
	count    int
	viewport viewport.Model
	content  string
	ready    bool
}

func newResultsModel(title string, vacancies []model.Vacancy) resultsModel {
	return resultsModel{
		title:   title,
		count:   len(vacancies),
		content: renderVacancies(vacancies),
	}
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// header + status bar + border
		height := max(msg.Height-4, 1)
		width := max(msg.Width-2, 1)
		if !m.ready {
			m.viewport = viewport.New(width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = height
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m resultsModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", m.title, m.count))
	status := statusBarStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q back", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, borderStyle.Render(m.viewport.View()), status)
}

// RunResults shows vacancies in a scrollable full-screen view until the user
// presses q.
func RunResults(title string, vacancies []model.Vacancy) error {
	p := tea.NewProgram(newResultsModel(title, vacancies), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
