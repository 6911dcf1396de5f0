package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/components/output"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// Rows taken by everything except the output log: header, two bordered
// inputs and the status bar.
const chromeHeight = 1 + 3 + 3 + 1

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	pathField  *input.Field
	queryField *input.Field
	picker     filepicker.Model
	log        *output.Log
	statusBar  *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// focus is the input receiving key presses on the main view.
	focus messages.Field

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf", ".PDF"}
	picker.CurrentDirectory = "."
	if ports.StartDir != "" {
		picker.CurrentDirectory = ports.StartDir
	}

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		pathField:   input.NewPathField(s),
		queryField:  input.NewQueryField(s),
		picker:      picker,
		log:         output.NewLog(s),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewMain,
		focus:       messages.FieldPath,
	}
	a.pathField.Focus()
	a.statusBar.SetSession(ports.Session.State())

	return a, nil
}

// WithContext sets the context used for session operations.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pdfqa"),
		a.pathField.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case messages.PDFLoaded:
		a.handleLoaded(msg)
		return a, nil

	case messages.IngestCompleted:
		if msg.Err != nil {
			a.finish()
			a.log.Append(output.KindError, driving.FormatError(msg.Err))
			return a, nil
		}
		return a, a.ask(msg.Query)

	case messages.AnswerReceived:
		a.finish()
		if msg.Err != nil {
			a.log.Append(output.KindError, driving.FormatError(msg.Err))
			return a, nil
		}
		a.log.Append(output.KindAnswer, driving.FormatAnswer(msg.Query, msg.Answer.Text))
		a.queryField.Reset()
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewFilePicker {
			return a, a.updatePicker(msg)
		}
		return a, a.handleKey(msg)
	}

	// Directory listings and cursor blinks.
	var pickerCmd, fieldCmd tea.Cmd
	a.picker, pickerCmd = a.picker.Update(msg)
	fieldCmd = a.updateFocused(msg)
	return a, tea.Batch(pickerCmd, fieldCmd)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Submit):
		return a.submit()

	case keymap.Matches(keyStr, a.keymap.OpenFile):
		if a.Busy() {
			return nil
		}
		a.currentView = messages.ViewFilePicker
		a.statusBar.SetActivity(status.ActivityPicking)
		return a.picker.Init()

	case keymap.Matches(keyStr, a.keymap.NextField):
		return a.setFocus(a.focus.Next())

	case keymap.Matches(keyStr, a.keymap.ScrollUp):
		a.log.PageUp()
		return nil

	case keymap.Matches(keyStr, a.keymap.ScrollDown):
		a.log.PageDown()
		return nil

	case keymap.Matches(keyStr, a.keymap.ClearLog):
		a.log.Clear()
		return nil
	}

	return a.updateFocused(msg)
}

func (a *App) updatePicker(msg tea.KeyMsg) tea.Cmd {
	if keymap.Matches(msg.String(), a.keymap.Cancel) {
		a.closePicker()
		return nil
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)

	if ok, path := a.picker.DidSelectFile(msg); ok {
		a.closePicker()
		a.pathField.SetValue(path)
		return tea.Batch(cmd, a.load(path))
	}
	if ok, path := a.picker.DidSelectDisabledFile(msg); ok {
		a.log.Append(output.KindWarning, fmt.Sprintf("Not a PDF: %s", path))
	}
	return cmd
}

func (a *App) closePicker() {
	a.currentView = messages.ViewMain
	a.statusBar.SetActivity(status.ActivityIdle)
}

func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case messages.FieldQuery:
		a.queryField, cmd = a.queryField.Update(msg)
	default:
		a.pathField, cmd = a.pathField.Update(msg)
	}
	return cmd
}

func (a *App) setFocus(field messages.Field) tea.Cmd {
	a.focus = field
	if field == messages.FieldQuery {
		a.pathField.Blur()
		return a.queryField.Focus()
	}
	a.queryField.Blur()
	return a.pathField.Focus()
}

// submit loads the path or asks the question, depending on focus.
// Submissions made while an operation is running are ignored.
func (a *App) submit() tea.Cmd {
	if a.Busy() {
		return nil
	}

	if a.focus == messages.FieldPath {
		path := strings.TrimSpace(a.pathField.Value())
		if path == "" {
			return nil
		}
		return a.load(path)
	}

	query := a.queryField.Value()
	session := a.ports.Session
	if err := session.Validate(query); err != nil {
		a.log.Append(output.KindWarning, driving.MsgMissingInput)
		return nil
	}
	if session.NeedsIngestion() {
		return a.ingest(query)
	}
	return a.ask(query)
}

func (a *App) load(path string) tea.Cmd {
	a.statusBar.SetActivity(status.ActivityLoading)
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		result, err := session.Load(ctx, path)
		return messages.PDFLoaded{Path: path, Result: result, Err: err}
	}
}

func (a *App) ingest(query string) tea.Cmd {
	a.log.Append(output.KindInfo, driving.MsgProcessing)
	a.statusBar.SetActivity(status.ActivityProcessing)
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		return messages.IngestCompleted{Query: query, Err: session.Ingest(ctx)}
	}
}

func (a *App) ask(query string) tea.Cmd {
	a.log.Append(output.KindInfo, driving.MsgGenerating)
	a.statusBar.SetActivity(status.ActivityGenerating)
	ctx, session := a.ctx, a.ports.Session
	return func() tea.Msg {
		answer, err := session.Ask(ctx, query)
		return messages.AnswerReceived{Query: query, Answer: answer, Err: err}
	}
}

func (a *App) handleLoaded(msg messages.PDFLoaded) {
	a.finish()
	if msg.Err != nil {
		a.log.Append(output.KindError, driving.FormatError(msg.Err))
		return
	}

	result := msg.Result
	a.log.Append(output.KindSuccess, driving.MsgUploaded)
	if result.StaleHandles {
		a.log.Append(output.KindWarning, driving.StaleWarning(result.Document, result.Handles))
	}
	a.statusBar.SetDocument(result.Document.Title, result.StaleHandles)
	a.setFocus(messages.FieldQuery)
}

// finish returns to idle and refreshes the session state shown.
func (a *App) finish() {
	a.statusBar.SetActivity(status.ActivityIdle)
	a.statusBar.SetSession(a.ports.Session.State())
}

func (a *App) layout() {
	a.pathField.SetWidth(a.width)
	a.queryField.SetWidth(a.width)
	a.statusBar.SetWidth(a.width)

	logHeight := a.height - chromeHeight
	if logHeight < 3 {
		logHeight = 3
	}
	a.log.SetSize(a.width, logHeight)
	a.picker.SetHeight(max(a.height-3, 3))
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("pdfqa") + " " + a.styles.Muted.Render("ask questions about a PDF")

	if a.currentView == messages.ViewFilePicker {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			a.styles.Muted.Render("Select a PDF in "+a.picker.CurrentDirectory),
			a.picker.View(),
			a.statusBar.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.pathField.View(),
		a.queryField.View(),
		a.log.View(),
		a.statusBar.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Focus returns the focused input.
func (a *App) Focus() messages.Field {
	return a.focus
}

// Busy returns true while a load or remote operation is running.
func (a *App) Busy() bool {
	return a.statusBar.Activity().Busy()
}

// Ready returns true once the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Log returns the output log.
func (a *App) Log() *output.Log {
	return a.log
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// PathValue returns the text in the path input.
func (a *App) PathValue() string {
	return a.pathField.Value()
}

// QueryValue returns the text in the query input.
func (a *App) QueryValue() string {
	return a.queryField.Value()
}

// SetDimensions lays the app out for a terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
