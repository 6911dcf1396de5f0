package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

func TestRetriever_CorpusLifecycle(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()

	corpus, err := r.CreateCorpus(ctx, "Local PDF Corpus")
	require.NoError(t, err)
	assert.Contains(t, corpus.String(), "corpora/")

	doc, err := r.CreateDocument(ctx, corpus, "Uploaded PDF")
	require.NoError(t, err)
	assert.Contains(t, doc.String(), corpus.String()+"/documents/")

	_, err = r.CreateChunk(ctx, doc, "First chunk.")
	require.NoError(t, err)
	_, err = r.CreateChunk(ctx, doc, "Second chunk.")
	require.NoError(t, err)
	assert.Equal(t, []string{"First chunk.", "Second chunk."}, r.Chunks(doc))

	corpora, err := r.ListCorpora(ctx)
	require.NoError(t, err)
	require.Len(t, corpora, 1)
	assert.Equal(t, "Local PDF Corpus", corpora[0].DisplayName)
	assert.False(t, corpora[0].CreateTime.IsZero())

	err = r.DeleteCorpus(ctx, corpus, false)
	assert.ErrorIs(t, err, ErrCorpusNotEmpty)
	assert.True(t, domain.IsServiceError(err))

	require.NoError(t, r.DeleteCorpus(ctx, corpus, true))
	assert.Nil(t, r.Chunks(doc))

	corpora, err = r.ListCorpora(ctx)
	require.NoError(t, err)
	assert.Empty(t, corpora)
}

func TestRetriever_UnknownHandles(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()

	_, err := r.CreateDocument(ctx, "corpora/missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.CreateChunk(ctx, "corpora/missing/documents/d", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.DeleteCorpus(ctx, "corpora/missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRetriever_FailOn(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()
	boom := errors.New("boom")
	r.FailOn(OpCreateChunk, 2, boom)

	corpus, _ := r.CreateCorpus(ctx, "c")
	doc, _ := r.CreateDocument(ctx, corpus, "d")

	for i := 0; i < 2; i++ {
		_, err := r.CreateChunk(ctx, doc, "ok")
		require.NoError(t, err)
	}
	_, err := r.CreateChunk(ctx, doc, "fails")

	assert.ErrorIs(t, err, boom)
	assert.True(t, domain.IsServiceError(err))
	assert.Equal(t, 3, r.CallCount(OpCreateChunk))
	assert.Len(t, r.Chunks(doc), 2)
}

func TestRetriever_RecordsCalls(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()

	corpus, _ := r.CreateCorpus(ctx, "c")
	_ = r.DeleteCorpus(ctx, corpus, true)

	calls := r.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, Call{Op: OpCreateCorpus, Target: "c"}, calls[0])
	assert.Equal(t, Call{Op: OpDeleteCorpus, Target: corpus.String(), Force: true}, calls[1])
}

func TestRetriever_CancelledContext(t *testing.T) {
	r := NewRetriever()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.CreateCorpus(ctx, "c")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetriever_GenerateAnswer(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()

	corpus, _ := r.CreateCorpus(ctx, "c")
	doc, _ := r.CreateDocument(ctx, corpus, "d")
	_, _ = r.CreateChunk(ctx, doc, "The sky is blue during the day.")
	_, _ = r.CreateChunk(ctx, doc, "Grass is green in spring.")

	answer, err := r.GenerateAnswer(ctx, domain.AnswerRequest{Corpus: corpus, Query: "What colour is grass?"})

	require.NoError(t, err)
	assert.Equal(t, "Grass is green in spring.", answer.Text)
	assert.Equal(t, domain.AnswerStyleAbstractive, answer.Style)
	assert.Equal(t, domain.DefaultAnswerModel, answer.Model)
	assert.Equal(t, corpus, answer.Corpus)
	assert.Greater(t, answer.AnswerableProbability, float32(0))
}

func TestRetriever_GenerateAnswer_NoMatch(t *testing.T) {
	r := NewRetriever()
	ctx := context.Background()
	corpus, _ := r.CreateCorpus(ctx, "c")

	_, err := r.GenerateAnswer(ctx, domain.AnswerRequest{Corpus: corpus, Query: "anything here"})
	assert.ErrorIs(t, err, domain.ErrNoAnswer)

	_, err = r.GenerateAnswer(ctx, domain.AnswerRequest{Corpus: "corpora/none", Query: "q"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"what", "colour", "grass"}, queryTerms("What colour is grass? Grass!"))
	assert.Empty(t, queryTerms("a an is"))
}
