// Package tui implements the interactive picker: an incrementally
// filtered, fuzzy-ranked view over history and pins. Enter copies the
// selected record to the clipboard.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clippyd/clippy/internal/clipboard"
	"github.com/clippyd/clippy/internal/record"
	"github.com/clippyd/clippy/internal/search"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noMatchStyle  = lipgloss.NewStyle().Faint(true)
	defaultHeight = 20
	defaultWidth  = 80
)

// Picker is the bubbletea model for interactive record selection.
type Picker struct {
	history []record.Record
	pinned  []record.Record
	clip    clipboard.Clipboard

	query   string
	cursor  int
	results []search.Result

	width  int
	height int

	copied    bool
	selection record.Record
	errMsg    string
}

// NewPicker creates a picker over both collections. With an empty query
// every record is shown in original order.
func NewPicker(history, pinned []record.Record, clip clipboard.Clipboard) Picker {
	p := Picker{
		history: history,
		pinned:  pinned,
		clip:    clip,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	p.results = search.Run("", history, pinned)
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = m.Width
		p.height = m.Height
		return p, nil

	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c", "esc":
			return p, tea.Quit

		case "enter":
			if len(p.results) == 0 {
				return p, nil
			}
			rec := p.results[p.cursor].Record
			if err := p.clip.Write([]byte(rec.Content)); err != nil {
				p.errMsg = fmt.Sprintf("clipboard write failed: %v", err)
				return p, nil
			}
			p.copied = true
			p.selection = rec
			return p, tea.Quit

		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "down", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case "backspace":
			if p.query != "" {
				runes := []rune(p.query)
				p.setQuery(string(runes[:len(runes)-1]))
			}
			return p, nil

		default:
			if m.Type == tea.KeyRunes {
				p.setQuery(p.query + string(m.Runes))
			}
			return p, nil
		}
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("> ") + p.query + "\n\n")

	visible := p.height - 6
	if visible < 1 {
		visible = 1
	}

	// Keep the cursor inside the visible window.
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := start + visible
	if end > len(p.results) {
		end = len(p.results)
	}

	if len(p.results) == 0 {
		b.WriteString(noMatchStyle.Render("  no matches") + "\n")
	}

	for i := start; i < end; i++ {
		res := p.results[i]
		origin := "history"
		if res.Source == search.FromPins {
			origin = "pin"
		}

		line := fmt.Sprintf("  %-7s %s", origin, res.Record.Preview())
		if runes := []rune(line); len(runes) > p.width-2 && p.width > 5 {
			line = string(runes[:p.width-5]) + "..."
		}

		if i == p.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("type to filter · ↑/↓ move · enter copy · esc quit"))
	return b.String()
}

// Copied reports whether a record was copied before the picker quit.
func (p Picker) Copied() bool {
	return p.copied
}

// Selection returns the copied record; only meaningful when Copied is true.
func (p Picker) Selection() record.Record {
	return p.selection
}

// Results exposes the current ranked results, used by tests.
func (p Picker) Results() []search.Result {
	return p.results
}

func (p *Picker) setQuery(query string) {
	p.query = query
	p.results = search.Run(query, p.history, p.pinned)
	p.cursor = 0
}
