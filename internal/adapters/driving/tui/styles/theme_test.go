package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":    theme.Primary,
		"secondary":  theme.Secondary,
		"foreground": theme.Foreground,
		"muted":      theme.Muted,
		"success":    theme.Success,
		"warning":    theme.Warning,
		"error":      theme.Error,
		"border":     theme.Border,
		"focus":      theme.Focus,
		"bar":        theme.Bar,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_StatusColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate colour: %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_FocusedFieldUsesFocusBorder(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyles(theme)

	assert.Equal(t, lipgloss.TerminalColor(theme.Focus), s.FocusedField.GetBorderTopForeground())
	assert.Equal(t, lipgloss.TerminalColor(theme.Border), s.InputField.GetBorderTopForeground())
}

func TestStyles_RenderText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Query.Render("Query: x"), "Query: x")
	assert.Contains(t, s.Error.Render("Error: y"), "Error: y")
	assert.Contains(t, s.StatusBar.Render("EMPTY"), "EMPTY")
}
