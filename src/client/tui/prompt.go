// Package tui holds the small interactive prompts the CLI shows on a terminal.
package tui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user aborts a prompt with Esc or Ctrl+C.
var ErrCanceled = errors.New("prompt canceled")

// Dracula palette
var (
	comment = lipgloss.Color("#6272a4")
	purple  = lipgloss.Color("#bd93f9")
	yellow  = lipgloss.Color("#f1fa8c")
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(purple).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(comment)
	warnStyle   = lipgloss.NewStyle().Foreground(yellow)
)

type tokenModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newTokenModel() tokenModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "paste your API token"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 512
	ti.Width = 48
	ti.Focus()
	return tokenModel{input: ti}
}

func (m tokenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tokenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tokenModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(promptStyle.Render("API token: "))
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: save • Esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

func (m tokenModel) token() string {
	return strings.TrimSpace(m.input.Value())
}

// PromptToken asks for a token with masked input. in and out must be the
// terminal.
func PromptToken(in io.Reader, out io.Writer) (string, error) {
	final, err := tea.NewProgram(newTokenModel(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}
	m := final.(tokenModel)
	if m.canceled {
		return "", ErrCanceled
	}
	return m.token(), nil
}

type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "ctrl+c":
		m.answer, m.done = false, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return warnStyle.Render(m.question) + " " + helpStyle.Render("[y/N]") + " "
}

// Confirm asks a yes/no question. Anything but "y" is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).answer, nil
}
