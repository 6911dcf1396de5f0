// Package output provides the scrollable output log of the TUI.
package output

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/styles"
)

// Kind selects how an entry is styled.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
	KindAnswer
)

// Entry is one message in the log.
type Entry struct {
	Kind Kind
	Text string
}

// Log is a read-only, append-only message log. New entries scroll the
// view to the bottom.
type Log struct {
	viewport viewport.Model
	styles   *styles.Styles
	entries  []Entry
}

// NewLog creates an empty log.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Log{
		viewport: viewport.New(80, 10),
		styles:   s,
	}
}

// Update handles scrolling messages.
func (l *Log) Update(msg tea.Msg) (*Log, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

// View renders the visible part of the log inside a frame.
func (l *Log) View() string {
	return l.styles.Log.Render(l.viewport.View())
}

// Append adds an entry and scrolls to it.
func (l *Log) Append(kind Kind, text string) {
	l.entries = append(l.entries, Entry{Kind: kind, Text: text})
	l.render()
	l.viewport.GotoBottom()
}

// Entries returns a copy of the log entries.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Text returns the plain text of every entry, one per line.
func (l *Log) Text() string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.Text
	}
	return strings.Join(lines, "\n")
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.entries = nil
	l.render()
}

// PageUp scrolls up one page.
func (l *Log) PageUp() {
	l.viewport.PageUp()
}

// PageDown scrolls down one page.
func (l *Log) PageDown() {
	l.viewport.PageDown()
}

// AtBottom returns true if the newest entry is visible.
func (l *Log) AtBottom() bool {
	return l.viewport.AtBottom()
}

// SetSize sets the outer size of the log, frame included.
func (l *Log) SetSize(width, height int) {
	frameW, frameH := l.styles.Log.GetFrameSize()
	l.viewport.Width = max(width-frameW, 10)
	l.viewport.Height = max(height-frameH, 1)
	l.render()
}

// render rebuilds the viewport content, wrapping entries to its width.
func (l *Log) render() {
	wrap := lipgloss.NewStyle().Width(l.viewport.Width)
	blocks := make([]string, len(l.entries))
	for i, e := range l.entries {
		blocks[i] = wrap.Render(l.style(e.Kind).Render(e.Text))
	}
	l.viewport.SetContent(strings.Join(blocks, "\n"))
}

func (l *Log) style(kind Kind) lipgloss.Style {
	switch kind {
	case KindSuccess:
		return l.styles.Success
	case KindWarning:
		return l.styles.Warning
	case KindError:
		return l.styles.Error
	case KindAnswer:
		return l.styles.Query
	default:
		return l.styles.Normal
	}
}
