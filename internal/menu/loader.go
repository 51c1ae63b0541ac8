package menu

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobparser/internal/pipeline"
)

type searchDoneMsg struct {
	session pipeline.Session
	err     error
}

type loaderModel struct {
	label    string
	searchFn func(ctx context.Context) (pipeline.Session, error)
	ctx      context.Context
	cancel   context.CancelFunc
	spinner  spinner.Model
	result   pipeline.Session
	err      error
	done     bool
}

func newLoaderModel(ctx context.Context, label string, searchFn func(ctx context.Context) (pipeline.Session, error)) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	ctx, cancel := context.WithCancel(ctx)
	return loaderModel{label: label, searchFn: searchFn, ctx: ctx, cancel: cancel, spinner: s}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doSearch(), m.spinner.Tick)
}

func (m loaderModel) doSearch() tea.Cmd {
	ctx, searchFn := m.ctx, m.searchFn
	return func() tea.Msg {
		sess, err := searchFn(ctx)
		return searchDoneMsg{session: sess, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.result = msg.session
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner while searchFn runs. It renders inline (no alt screen).
func RunLoader(ctx context.Context, label string, searchFn func(ctx context.Context) (pipeline.Session, error)) (pipeline.Session, error) {
	m := newLoaderModel(ctx, label, searchFn)
	defer m.cancel()
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return pipeline.Session{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
