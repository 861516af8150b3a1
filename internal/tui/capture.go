// Package tui implements the interactive capture input: a single-line
// prompt with live /tag highlighting, autocomplete over known tags, and
// whole-token backward delete.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ewchang/synapse/internal/tagparse"
)

type captureModel struct {
	input       textinput.Model
	tags        []string
	suggestions []string
	selected    int
	done        bool
	canceled    bool
}

func newCaptureModel(tags []string) captureModel {
	ti := textinput.New()
	ti.Placeholder = "what's on your mind? use /tag to file it"
	ti.Prompt = promptStyle.Render("> ")
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 72

	return captureModel{input: ti, tags: tags}
}

func (m captureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m captureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit

	case tea.KeyBackspace:
		// Whole-token delete when the cursor sits right after a known /tag.
		text, cursor := tagparse.BackwardDelete(m.input.Value(), m.input.Position(), m.tags)
		m.input.SetValue(text)
		m.input.SetCursor(cursor)
		m.refreshSuggestions()
		return m, nil

	case tea.KeyTab:
		m.complete()
		return m, nil

	case tea.KeyDown:
		if len(m.suggestions) > 0 {
			m.selected = (m.selected + 1) % len(m.suggestions)
		}
		return m, nil

	case tea.KeyUp:
		if len(m.suggestions) > 0 {
			m.selected = (m.selected + len(m.suggestions) - 1) % len(m.suggestions)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m *captureModel) refreshSuggestions() {
	m.suggestions = nil
	m.selected = 0
	prefix, _, ok := tagparse.CurrentToken(m.input.Value(), m.input.Position())
	if !ok {
		return
	}
	m.suggestions = tagparse.Suggest(prefix, m.tags)
}

// complete replaces the partial /token at the cursor with the selected
// suggestion.
func (m *captureModel) complete() {
	if len(m.suggestions) == 0 {
		return
	}
	_, start, ok := tagparse.CurrentToken(m.input.Value(), m.input.Position())
	if !ok {
		return
	}
	runes := []rune(m.input.Value())
	cursor := m.input.Position()
	completed := string(runes[:start]) + "/" + m.suggestions[m.selected] + string(runes[cursor:])
	newCursor := start + 1 + len([]rune(m.suggestions[m.selected]))

	m.input.SetValue(completed)
	m.input.SetCursor(newCursor)
	m.refreshSuggestions()
}

func (m captureModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Highlighted preview of the final text.
	if v := m.input.Value(); v != "" {
		for _, span := range tagparse.Parse(v, m.tags) {
			switch {
			case span.Known:
				b.WriteString(knownTagStyle.Render(span.Text))
			case span.Tag:
				b.WriteString(unknownTagStyle.Render(span.Text))
			default:
				b.WriteString(span.Text)
			}
		}
		b.WriteString("\n")
	}

	if len(m.suggestions) > 0 {
		parts := make([]string, len(m.suggestions))
		for i, s := range m.suggestions {
			if i == m.selected {
				parts[i] = selectedStyle.Render("/" + s)
			} else {
				parts[i] = suggestionStyle.Render("/" + s)
			}
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter submit · tab complete · esc cancel"))
	return b.String()
}

// CaptureInput runs the interactive prompt and returns the entered text.
func CaptureInput(tags []string) (string, error) {
	p := tea.NewProgram(newCaptureModel(tags))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("capture input: %w", err)
	}
	m := final.(captureModel)
	if m.canceled {
		return "", fmt.Errorf("capture canceled")
	}
	return m.input.Value(), nil
}
