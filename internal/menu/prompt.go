package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 0, 2)

	promptInputStyle = lipgloss.NewStyle().
				Padding(1, 0, 0, 2)

	promptErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Padding(0, 0, 0, 2)
)

// ValidateQuery rejects blank search terms.
func ValidateQuery(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter a job title to search for")
	}
	return nil
}

// ParseTopN parses the number of vacancies to keep in the top list.
func ParseTopN(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n <= 0 {
		return 0, errors.New("enter a number greater than zero")
	}
	return n, nil
}

type promptModel struct {
	title     string
	input     textinput.Model
	validate  func(string) error
	err       error
	submitted bool
}

func newPromptModel(title, placeholder string, validate func(string) error) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()
	return promptModel{title: title, input: ti, validate: validate}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "esc":
			m.submitted = false
			return m, tea.Quit
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					// Stay on the prompt and show what is wrong.
					m.err = err
					return m, nil
				}
			}
			m.err = nil
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	s := promptTitleStyle.Render(m.title) + "\n"
	s += promptInputStyle.Render(m.input.View()) + "\n"
	if m.err != nil {
		s += promptErrorStyle.Render(m.err.Error()) + "\n"
	}
	return s
}

// RunPrompt asks for one line of input, re-prompting until validate accepts it.
// ok is false if the user cancelled.
func RunPrompt(title, placeholder string, validate func(string) error) (string, bool, error) {
	p := tea.NewProgram(newPromptModel(title, placeholder, validate))
	result, err := p.Run()
	if err != nil {
		return "", false, err
	}
	final := result.(promptModel)
	if !final.submitted {
		return "", false, nil
	}
	return strings.TrimSpace(final.input.Value()), true, nil
}
