package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// ErrPickerAborted is returned when the user leaves the picker without a choice
var ErrPickerAborted = errors.New("selection aborted")

// PickerModel is a bubbletea model letting the user choose one of a list of
// items, narrowed by a fuzzy filter
type PickerModel struct {
	theme   *Theme
	title   string
	items   []string
	filter  textinput.Model
	matches []string
	cursor  int
	chosen  string
	aborted bool
}

// NewPicker creates a picker over items
func NewPicker(theme *Theme, title string, items []string) PickerModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Focus()

	return PickerModel{
		theme:   theme,
		title:   title,
		items:   items,
		filter:  ti,
		matches: items,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.chosen = m.matches[m.cursor]
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter recomputes matches from the filter text, best match first
func (m *PickerModel) applyFilter() {
	query := m.filter.Value()
	if query == "" {
		m.matches = m.items
	} else {
		found := fuzzy.Find(query, m.items)
		m.matches = make([]string, len(found))
		for i, match := range found {
			m.matches[i] = match.Str
		}
	}

	if m.cursor >= len(m.matches) {
		m.cursor = max(len(m.matches)-1, 0)
	}
}

func (m PickerModel) View() string {
	if m.chosen != "" || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(m.theme.Help.Render("  no matching keys"))
		b.WriteString("\n")
	}
	for i, item := range m.matches {
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("› " + item))
		} else {
			b.WriteString(m.theme.Item.Render(item))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected item and whether one was selected
func (m PickerModel) Chosen() (string, bool) {
	return m.chosen, m.chosen != ""
}

// Aborted reports whether the user cancelled
func (m PickerModel) Aborted() bool {
	return m.aborted
}

// Pick runs a picker reading keys from in and drawing on out
func Pick(ctx context.Context, in io.Reader, out io.Writer, title string, items []string) (string, error) {
	model := NewPicker(NewTheme(out), title, items)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(PickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected picker model %T", final)
	}
	if chosen, ok := result.Chosen(); ok {
		return chosen, nil
	}
	return "", ErrPickerAborted
}
