package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Cyclone1070/gptcode/internal/ui/views"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptModel is a single-line bubbletea editor. The program quits on
// Enter, Ctrl+C or Ctrl+D on an empty line.
type promptModel struct {
	input     textinput.Model
	value     string
	submitted bool
	aborted   error
}

func newPromptModel(prompt string) promptModel {
	ti := textinput.New()
	ti.Prompt = views.InputPromptStyle.Render(prompt)
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.aborted = ErrInterrupted
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.aborted = io.EOF
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-1, 0)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.aborted != nil {
		// Leave the answered line in the scrollback without a cursor.
		return m.input.Prompt + m.value + "\n"
	}
	return m.input.View()
}

// runPrompt reads one line through an inline bubbletea program.
func runPrompt(ctx context.Context, in io.Reader, out io.Writer, prompt string) (string, error) {
	p := tea.NewProgram(newPromptModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return "", ErrInterrupted
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("prompt: unexpected model %T", final)
	}
	if m.aborted != nil {
		return "", m.aborted
	}
	return m.value, nil
}
