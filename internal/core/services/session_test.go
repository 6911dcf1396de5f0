package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

var sessionTexts = map[string]string{
	"/docs/france.pdf": "Paris is the capital of France. The Seine flows through Paris.",
	"/docs/japan.pdf":  "Tokyo is the capital of Japan. Mount Fuji is the tallest mountain in Japan.",
	"/docs/blank.pdf":  "",
	"/docs/spaces.pdf": " \n ",
}

func TestSession_AskBeforeLoad(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)

	answer, err := f.session.Ask(context.Background(), "What is the capital?")

	assert.Nil(t, answer)
	assert.ErrorIs(t, err, domain.ErrNoDocument)
	assert.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Zero(t, f.remoteCalls())
	assert.Equal(t, domain.SessionEmpty, f.session.State())
}

func TestSession_AskEmptyQuery(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	_, err := f.session.Load(ctx, "/docs/france.pdf")
	require.NoError(t, err)

	for _, q := range []string{"", "   "} {
		_, err := f.session.Ask(ctx, q)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
	assert.Zero(t, f.remoteCalls())
}

func TestSession_BlankPDFCountsAsNoDocument(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()

	result, err := f.session.Load(ctx, "/docs/blank.pdf")
	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)

	_, err = f.session.Ask(ctx, "anything?")
	assert.ErrorIs(t, err, domain.ErrNoDocument)
	assert.Zero(t, f.remoteCalls())
}

func TestSession_WhitespaceOnlyPDFCountsAsNoDocument(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()

	_, err := f.session.Load(ctx, "/docs/spaces.pdf")
	require.NoError(t, err)

	assert.ErrorIs(t, f.session.Validate("anything about this?"), domain.ErrNoDocument)

	_, err = f.session.Ask(ctx, "anything about this?")
	assert.ErrorIs(t, err, domain.ErrNoDocument)
	assert.ErrorIs(t, f.session.Ingest(ctx), domain.ErrNoDocument)
	assert.Zero(t, f.remoteCalls())
	assert.Equal(t, domain.SessionEmpty, f.session.State())
}

func TestSession_FullFlow(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()

	result, err := f.session.Load(ctx, "/docs/france.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionEmpty, result.State)
	assert.False(t, result.StaleHandles)
	assert.True(t, f.session.NeedsIngestion())
	assert.Zero(t, f.remoteCalls())

	answer, err := f.session.Ask(ctx, "What is the capital of France?")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Paris")
	assert.Equal(t, domain.SessionQueried, f.session.State())
	assert.False(t, f.session.NeedsIngestion())

	handles := f.session.Handles()
	assert.NotEmpty(t, handles.Corpus)
	assert.NotEmpty(t, handles.Document)
	assert.Equal(t, answer.Corpus, handles.Corpus)
	assert.Equal(t,
		[]string{"Paris is the capital of France. The Seine flows through Paris."},
		f.retriever.Chunks(handles.Document))

	// A second question reuses the corpus.
	_, err = f.session.Ask(ctx, "Which river flows through Paris?")
	require.NoError(t, err)
	assert.Equal(t, 1, f.retriever.CallCount(memory.OpCreateCorpus))
	assert.Equal(t, 1, f.retriever.CallCount(memory.OpCreateDocument))
	assert.Equal(t, 2, f.retriever.CallCount(memory.OpGenerateAnswer))
	assert.Equal(t, handles, f.session.Handles())
}

func TestSession_CallOrder(t *testing.T) {
	f := newSessionFixture(SessionConfig{CorpusDisplayName: "Papers", DocumentDisplayName: "Paper"}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	_, err := f.session.Ask(ctx, "capital of France")
	require.NoError(t, err)

	calls := f.retriever.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, memory.Call{Op: memory.OpCreateCorpus, Target: "Papers"}, calls[0])
	assert.Equal(t, memory.OpCreateDocument, calls[1].Op)
	assert.Equal(t, memory.OpCreateChunk, calls[2].Op)
	assert.Equal(t, memory.OpGenerateAnswer, calls[3].Op)
}

func TestSession_ChunksRespectMaxLength(t *testing.T) {
	sentences := make([]string, 30)
	for i := range sentences {
		sentences[i] = "Sentence number " + strings.Repeat("x", i%7) + " about capital cities"
	}
	texts := map[string]string{"/long.pdf": strings.Join(sentences, ". ")}
	f := newSessionFixture(SessionConfig{MaxChunkLength: 120}, texts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/long.pdf")

	require.NoError(t, f.session.Ingest(ctx))

	chunks := f.retriever.Chunks(f.session.Handles().Document)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 120)
	}
	assert.Equal(t, domain.SessionPopulated, f.session.State())
}

func TestSession_IngestIsIdempotentOncePopulated(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	require.NoError(t, f.session.Ingest(ctx))
	before := f.remoteCalls()
	require.NoError(t, f.session.Ingest(ctx))

	assert.Equal(t, before, f.remoteCalls())
}

func TestSession_CorpusFailureLeavesEmpty(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	boom := errors.New("unauthenticated")
	f.retriever.FailOn(memory.OpCreateCorpus, 0, boom)
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	_, err := f.session.Ask(ctx, "capital?")

	assert.ErrorIs(t, err, boom)
	assert.True(t, domain.IsServiceError(err))
	assert.Equal(t, domain.SessionEmpty, f.session.State())
	assert.Empty(t, f.session.Handles().Corpus)
}

func TestSession_ChunkFailureRetriesWithNewDocument(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	f.retriever.FailOn(memory.OpCreateChunk, 0, boom)
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	_, err := f.session.Ask(ctx, "capital of France?")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.SessionCorpusCreated, f.session.State())
	first := f.session.Handles()
	assert.NotEmpty(t, first.Corpus)

	f.retriever.FailOn(memory.OpCreateChunk, 1000, boom)
	answer, err := f.session.Ask(ctx, "capital of France?")

	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Paris")
	second := f.session.Handles()
	assert.Equal(t, first.Corpus, second.Corpus)
	assert.NotEqual(t, first.Document, second.Document)
	assert.Equal(t, 1, f.retriever.CallCount(memory.OpCreateCorpus))
	assert.Equal(t, 2, f.retriever.CallCount(memory.OpCreateDocument))
}

func TestSession_LoadFailureLeavesSessionUnchanged(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	f.reader.err = errors.New("no such file")
	_, err := f.session.Load(ctx, "/docs/missing.pdf")

	assert.Error(t, err)
	require.NotNil(t, f.session.Document())
	assert.Equal(t, "/docs/france.pdf", f.session.Document().URI)
}

func TestSession_ReuploadReuseKeepsStaleHandles(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")
	_, err := f.session.Ask(ctx, "capital of France?")
	require.NoError(t, err)
	before := f.session.Handles()

	result, err := f.session.Load(ctx, "/docs/japan.pdf")
	require.NoError(t, err)

	assert.True(t, result.StaleHandles)
	assert.Equal(t, before, result.Handles)
	assert.False(t, f.session.NeedsIngestion())

	// The new text is never ingested; the old corpus still answers.
	_, err = f.session.Ask(ctx, "capital of Japan?")
	require.NoError(t, err)
	assert.Equal(t, 1, f.retriever.CallCount(memory.OpCreateDocument))
	assert.Equal(t, before, f.session.Handles())
}

func TestSession_ReuploadNewDocument(t *testing.T) {
	f := newSessionFixture(SessionConfig{ReuploadPolicy: domain.ReuploadNewDocument}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")
	_, _ = f.session.Ask(ctx, "capital of France?")
	before := f.session.Handles()

	result, err := f.session.Load(ctx, "/docs/japan.pdf")
	require.NoError(t, err)
	assert.False(t, result.StaleHandles)
	assert.Equal(t, domain.SessionCorpusCreated, result.State)
	assert.Empty(t, result.Handles.Document)

	answer, err := f.session.Ask(ctx, "tallest mountain in Japan?")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Fuji")

	after := f.session.Handles()
	assert.Equal(t, before.Corpus, after.Corpus)
	assert.NotEqual(t, before.Document, after.Document)
	assert.Equal(t, 1, f.retriever.CallCount(memory.OpCreateCorpus))
}

func TestSession_ReuploadNewCorpus(t *testing.T) {
	f := newSessionFixture(SessionConfig{ReuploadPolicy: domain.ReuploadNewCorpus}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")
	_, _ = f.session.Ask(ctx, "capital of France?")
	before := f.session.Handles()

	result, err := f.session.Load(ctx, "/docs/japan.pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionEmpty, result.State)
	assert.Empty(t, result.Handles.Corpus)

	_, err = f.session.Ask(ctx, "capital of Japan?")
	require.NoError(t, err)
	assert.NotEqual(t, before.Corpus, f.session.Handles().Corpus)
	assert.Equal(t, 2, f.retriever.CallCount(memory.OpCreateCorpus))
}

func TestSession_ReloadBeforeIngestion(t *testing.T) {
	f := newSessionFixture(SessionConfig{}, sessionTexts)
	ctx := context.Background()
	_, _ = f.session.Load(ctx, "/docs/france.pdf")

	result, err := f.session.Load(ctx, "/docs/japan.pdf")
	require.NoError(t, err)
	assert.False(t, result.StaleHandles)

	answer, err := f.session.Ask(ctx, "tallest mountain in Japan?")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Fuji")
}

func TestSessionConfigFrom(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Chunking.MaxLength = 900
	settings.Remote.AnswerStyle = domain.AnswerStyleExtractive

	cfg := SessionConfigFrom(&settings)

	assert.Equal(t, "Local PDF Corpus", cfg.CorpusDisplayName)
	assert.Equal(t, "Uploaded PDF", cfg.DocumentDisplayName)
	assert.Equal(t, 900, cfg.MaxChunkLength)
	assert.Equal(t, domain.ReuploadReuse, cfg.ReuploadPolicy)
	assert.Equal(t, domain.AnswerStyleExtractive, cfg.Answer.Style)
	assert.Equal(t, "models/aqa", cfg.Answer.Model)
}

func TestSession_NotConfigured(t *testing.T) {
	s := NewSession(nil, nil, nil, nil, SessionConfig{})

	_, err := s.Load(context.Background(), "/a.pdf")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Equal(t, domain.SessionEmpty, s.State())
}
