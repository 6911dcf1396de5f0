package status

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, ActivityIdle, bar.Activity())
	assert.Equal(t, domain.SessionEmpty, bar.Session())
	assert.Equal(t, 80, bar.Width())
	assert.Nil(t, bar.Init())
}

func TestActivity_Busy(t *testing.T) {
	tests := []struct {
		activity Activity
		busy     bool
	}{
		{ActivityIdle, false},
		{ActivityPicking, false},
		{ActivityLoading, true},
		{ActivityProcessing, true},
		{ActivityGenerating, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.activity), func(t *testing.T) {
			assert.Equal(t, tt.busy, tt.activity.Busy())
		})
	}
}

func TestBar_ViewShowsStateAndDocument(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetSession(domain.SessionPopulated)
	bar.SetDocument("annual report", false)

	view := bar.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "POPULATED")
	assert.Contains(t, view, "annual report")
	assert.Contains(t, view, "ctrl+o: browse")
}

func TestBar_ViewFlagsStaleDocument(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetDocument("second", true)

	title, stale := bar.Document()
	assert.Equal(t, "second", title)
	assert.True(t, stale)
	assert.Contains(t, bar.View(), "second (not indexed)")
}

func TestBar_ViewActivities(t *testing.T) {
	tests := map[Activity]string{
		ActivityLoading:    "Loading...",
		ActivityProcessing: "Indexing...",
		ActivityGenerating: "Answering...",
		ActivityPicking:    "Select a PDF",
	}

	for activity, want := range tests {
		t.Run(string(activity), func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetActivity(activity)
			assert.Contains(t, bar.View(), want)
		})
	}
}

func TestBar_PickerHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetActivity(ActivityPicking)

	view := bar.View()

	assert.Contains(t, view, "esc: cancel")
	assert.NotContains(t, view, "ctrl+o")
}

func TestBar_ViewFitsWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	assert.Equal(t, 120, lipgloss.Width(bar.View()))
}
