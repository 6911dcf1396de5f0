package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeWithInput(t, "", args...)
	return stdout, err
}

// executeWithInput runs the root command with stdin and returns stdout
// and stderr separately.
func executeWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	color.NoColor = true

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so runs do not leak
// values or required-flag state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// withServices injects services for the duration of a test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

// withTerminal overrides terminal detection for the duration of a test.
func withTerminal(t *testing.T, isTerminal bool) {
	t.Helper()
	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTerminal }
	t.Cleanup(func() { stdinIsTerminal = original })
}

// fakeSession is a scripted driving.QuerySession.
type fakeSession struct {
	loadErr   error
	ingestErr error
	askErr    map[string]error
	stale     bool

	doc     *domain.Document
	state   domain.SessionState
	handles domain.SessionHandles

	loaded  []string
	ingests int
	asked   []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{state: domain.SessionEmpty, askErr: map[string]error{}}
}

func (f *fakeSession) Load(_ context.Context, path string) (*driving.LoadResult, error) {
	f.loaded = append(f.loaded, path)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.doc = &domain.Document{Title: filepath.Base(path), URI: path, Content: "text"}
	return &driving.LoadResult{
		Document:     *f.doc,
		State:        f.state,
		StaleHandles: f.stale,
		Handles:      f.handles,
	}, nil
}

func (f *fakeSession) Validate(query string) error {
	if f.doc == nil {
		return domain.ErrNoDocument
	}
	if strings.TrimSpace(query) == "" {
		return domain.ErrEmptyQuery
	}
	return nil
}

func (f *fakeSession) NeedsIngestion() bool {
	return !f.state.IsPopulated()
}

func (f *fakeSession) Ingest(_ context.Context) error {
	f.ingests++
	if f.ingestErr != nil {
		return f.ingestErr
	}
	f.handles = domain.SessionHandles{Corpus: "corpora/abc", Document: "corpora/abc/documents/def"}
	f.state = domain.SessionPopulated
	return nil
}

func (f *fakeSession) Ask(_ context.Context, query string) (*domain.Answer, error) {
	f.asked = append(f.asked, query)
	if err := f.askErr[query]; err != nil {
		return nil, err
	}
	f.state = domain.SessionQueried
	return &domain.Answer{
		Text:  "answer to " + query,
		Query: query,
		Style: domain.AnswerStyleAbstractive,
		Model: domain.DefaultAnswerModel,
	}, nil
}

func (f *fakeSession) State() domain.SessionState {
	return f.state
}

func (f *fakeSession) Handles() domain.SessionHandles {
	return f.handles
}

// sessionFactoryFor returns a factory that hands out session and records
// the options it was called with.
func sessionFactoryFor(session driving.QuerySession, got *driving.SessionOptions) driving.SessionFactory {
	return func(opts driving.SessionOptions) (driving.QuerySession, error) {
		if got != nil {
			*got = opts
		}
		return session, nil
	}
}

// fakePreview is a scripted driving.ChunkPreview.
type fakePreview struct {
	doc       *domain.Document
	chunks    []domain.Chunk
	err       error
	maxLength int
}

func (f *fakePreview) Preview(_ context.Context, _ string, maxLength int) (*domain.Document, []domain.Chunk, error) {
	f.maxLength = maxLength
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.doc, f.chunks, nil
}

// fakeMaintenance is a scripted driving.CorpusMaintenance.
type fakeMaintenance struct {
	corpora []domain.Corpus
	listErr error

	// failAt is the index of the corpus whose deletion fails, or -1.
	failAt int
	calls  int
}

func newFakeMaintenance(corpora ...domain.Corpus) *fakeMaintenance {
	return &fakeMaintenance{corpora: corpora, failAt: -1}
}

func (f *fakeMaintenance) ListCorpora(_ context.Context) ([]domain.Corpus, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.corpora, nil
}

func (f *fakeMaintenance) DeleteAllCorpora(
	_ context.Context, observer driving.DeletionObserver,
) (*domain.DeletionReport, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	report := &domain.DeletionReport{Listed: len(f.corpora)}
	for i, c := range f.corpora {
		observer(domain.DeletionEvent{Kind: domain.DeletionStarted, Corpus: c})
		if i == f.failAt {
			return report, errors.New("permission denied")
		}
		report.Deleted = append(report.Deleted, c.Name)
		observer(domain.DeletionEvent{Kind: domain.DeletionCompleted, Corpus: c})
	}
	return report, nil
}
