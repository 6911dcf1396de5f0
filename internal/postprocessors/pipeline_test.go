package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// mockProcessor is a test processor that returns predefined chunks.
type mockProcessor struct {
	name   string
	chunks []domain.Chunk
	err    error
	got    []domain.Chunk
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	m.got = chunks
	if m.err != nil {
		return nil, m.err
	}
	if m.chunks != nil {
		return m.chunks, nil
	}
	return chunks, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"test"}, p.Names())
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	_, err := NewPipeline().Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	doc := &domain.Document{ID: "test-doc", Content: "test content"}

	chunks, err := NewPipeline().Process(context.Background(), doc)

	require.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestPipeline_Process_ChainsProcessors(t *testing.T) {
	firstChunks := []domain.Chunk{{ID: "chunk-1", Content: "first"}}
	secondChunks := []domain.Chunk{
		{ID: "chunk-1", Content: "modified"},
		{ID: "chunk-2", Content: "added"},
	}
	first := &mockProcessor{name: "first", chunks: firstChunks}
	second := &mockProcessor{name: "second", chunks: secondChunks}

	chunks, err := NewPipeline(first, second).Process(context.Background(), &domain.Document{ID: "d"})

	require.NoError(t, err)
	assert.Nil(t, first.got)
	assert.Equal(t, firstChunks, second.got)
	assert.Equal(t, secondChunks, chunks)
}

func TestPipeline_Process_Error(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&mockProcessor{name: "broken", err: boom})

	_, err := p.Process(context.Background(), &domain.Document{ID: "d"})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "processor broken")
}
