package picker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const defaultListHeight = 15

// BuiltinPicker is the in-process fallback picker: a small bubbletea
// list with fuzzy filtering, used when fzf is not installed. The UI is
// drawn on stderr so stdout stays reserved for the selection output.
type BuiltinPicker struct {
	input  io.Reader
	output io.Writer
}

// NewBuiltinPicker creates a BuiltinPicker reading from the terminal
func NewBuiltinPicker() *BuiltinPicker {
	slog.Debug("creating new BuiltinPicker")
	return &BuiltinPicker{
		input:  os.Stdin,
		output: os.Stderr,
	}
}

// Name identifies this picker implementation
func (p *BuiltinPicker) Name() string {
	return "builtin"
}

// Pick runs the interactive list until the user confirms or cancels
func (p *BuiltinPicker) Pick(ctx context.Context, req Request) (*Result, error) {
	m := newBuiltinModel(req.Items, req.Query)

	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.input),
		tea.WithOutput(p.output),
	)

	final, err := prog.Run()
	if err != nil {
		slog.Error("builtin picker failed", "error", err)
		return nil, fmt.Errorf("builtin picker failed: %w", err)
	}

	fm, ok := final.(builtinModel)
	if !ok {
		return nil, fmt.Errorf("builtin picker returned unexpected model %T", final)
	}

	result := fm.result()
	slog.Debug("builtin picker finished",
		"cancelled", result.Cancelled,
		"selected", len(result.Selected))
	return result, nil
}

// builtinModel is the bubbletea model backing BuiltinPicker. Typing
// narrows the list with fuzzy matching, tab or space toggles the
// highlighted item, enter confirms, esc cancels.
type builtinModel struct {
	items     []string
	query     string
	visible   []string
	cursor    int
	selected  map[string]bool
	height    int
	confirmed bool
	cancelled bool
}

func newBuiltinModel(items []string, query string) builtinModel {
	m := builtinModel{
		items:    items,
		query:    query,
		selected: map[string]bool{},
		height:   defaultListHeight,
	}
	m.refilter()
	return m
}

func (m builtinModel) Init() tea.Cmd {
	return nil
}

func (m builtinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the prompt and status lines
		if h := msg.Height - 3; h > 0 {
			m.height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			m.confirmed = true
			return m, tea.Quit

		case "tab", " ":
			m.toggleCurrent()
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil

		case "backspace":
			if m.query != "" {
				runes := []rune(m.query)
				m.query = string(runes[:len(runes)-1])
				m.refilter()
			}
			return m, nil

		default:
			if msg.Type == tea.KeyRunes {
				m.query += string(msg.Runes)
				m.refilter()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m builtinModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "log settings> %s\n", m.query)
	fmt.Fprintf(&b, "  %d/%d (%d selected)\n", len(m.visible), len(m.items), len(m.selected))

	start, end := m.window()
	for i := start; i < end; i++ {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		marker := " "
		if m.selected[m.visible[i]] {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, marker, m.visible[i])
	}

	return b.String()
}

// toggleCurrent flips membership of the highlighted item and advances
// the cursor, matching the common fuzzy-finder toggle behavior
func (m *builtinModel) toggleCurrent() {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return
	}
	item := m.visible[m.cursor]
	if m.selected[item] {
		delete(m.selected, item)
	} else {
		m.selected[item] = true
	}
	if m.cursor < len(m.visible)-1 {
		m.cursor++
	}
}

// refilter recomputes the visible list for the current query. With an
// empty query the full list is shown in its given order; otherwise
// fuzzy matches are shown in rank order.
func (m *builtinModel) refilter() {
	if m.query == "" {
		m.visible = m.items
	} else {
		matches := fuzzy.Find(m.query, m.items)
		visible := make([]string, len(matches))
		for i, match := range matches {
			visible[i] = match.Str
		}
		m.visible = visible
	}
	m.cursor = 0
}

// window returns the half-open visible range scrolled around the cursor
func (m builtinModel) window() (int, int) {
	if len(m.visible) <= m.height {
		return 0, len(m.visible)
	}
	start := m.cursor - m.height/2
	if start < 0 {
		start = 0
	}
	end := start + m.height
	if end > len(m.visible) {
		end = len(m.visible)
		start = end - m.height
	}
	return start, end
}

// result converts the final model state into a picker Result. A
// confirm with no toggled items selects the highlighted line, the way
// fzf treats plain enter.
func (m builtinModel) result() *Result {
	if m.cancelled || !m.confirmed {
		return &Result{Cancelled: true}
	}

	if len(m.selected) == 0 {
		if m.cursor >= 0 && m.cursor < len(m.visible) {
			return &Result{Selected: []string{m.visible[m.cursor]}}
		}
		return &Result{Cancelled: true}
	}

	// Toggled items are reported in list order
	var selected []string
	for _, item := range m.items {
		if m.selected[item] {
			selected = append(selected, item)
		}
	}
	return &Result{Selected: selected}
}
