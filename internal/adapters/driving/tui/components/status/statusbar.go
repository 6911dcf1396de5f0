// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// Activity is what the application is doing right now.
type Activity string

const (
	ActivityIdle       Activity = "idle"
	ActivityLoading    Activity = "loading"
	ActivityProcessing Activity = "processing"
	ActivityGenerating Activity = "generating"
	ActivityPicking    Activity = "picking"
)

// Busy returns true while a load or remote operation is running.
func (a Activity) Busy() bool {
	switch a {
	case ActivityLoading, ActivityProcessing, ActivityGenerating:
		return true
	default:
		return false
	}
}

// Bar displays the session state, the loaded document and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	activity Activity
	session  domain.SessionState
	document string
	stale    bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		activity: ActivityIdle,
		session:  domain.SessionEmpty,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// The bar style pads one column on each side.
	padding := s.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the activity, session state and document.
func (s *Bar) renderLeft() string {
	parts := []string{s.renderActivity(), s.styles.Normal.Render(s.session.String())}

	if s.document != "" {
		doc := s.document
		if s.stale {
			doc = s.styles.Warning.Render(doc + " (not indexed)")
		} else {
			doc = s.styles.Muted.Render(doc)
		}
		parts = append(parts, doc)
	}

	return strings.Join(parts, "  ")
}

func (s *Bar) renderActivity() string {
	switch s.activity {
	case ActivityLoading:
		return s.styles.Muted.Render("Loading...")
	case ActivityProcessing:
		return s.styles.Muted.Render("Indexing...")
	case ActivityGenerating:
		return s.styles.Muted.Render("Answering...")
	case ActivityPicking:
		return s.styles.Normal.Render("Select a PDF")
	default:
		return s.styles.Success.Render("Ready")
	}
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.activity == ActivityPicking {
		bindings = s.keymap.PickerHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetActivity sets the current activity.
func (s *Bar) SetActivity(activity Activity) {
	s.activity = activity
}

// Activity returns the current activity.
func (s *Bar) Activity() Activity {
	return s.activity
}

// SetSession sets the session state shown.
func (s *Bar) SetSession(state domain.SessionState) {
	s.session = state
}

// Session returns the session state shown.
func (s *Bar) Session() domain.SessionState {
	return s.session
}

// SetDocument sets the loaded document title. Stale documents were
// loaded but not indexed.
func (s *Bar) SetDocument(title string, stale bool) {
	s.document = title
	s.stale = stale
}

// Document returns the document title and whether it is stale.
func (s *Bar) Document() (string, bool) {
	return s.document, s.stale
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
