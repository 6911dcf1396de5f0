package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

func newFakePreview() *fakePreview {
	return &fakePreview{
		doc: &domain.Document{Title: "report.pdf", PageCount: 2, Content: "Hello world. Bye."},
		chunks: []domain.Chunk{
			{Content: "Hello world.", Position: 0},
			{Content: "Bye.", Position: 1},
		},
	}
}

func TestChunkCmd_Text(t *testing.T) {
	preview := newFakePreview()
	withServices(t, &Services{Preview: preview})

	out, err := execute(t, "chunk", "-f", "report.pdf")

	require.NoError(t, err)
	assert.Equal(t, "report.pdf: 2 pages, 17 characters, 2 chunks\n"+
		"\n[1] 12 bytes\nHello world.\n"+
		"\n[2] 4 bytes\nBye.\n", out)
	assert.Zero(t, preview.maxLength)
}

func TestChunkCmd_JSON(t *testing.T) {
	withServices(t, &Services{Preview: newFakePreview()})

	out, err := execute(t, "chunk", "-f", "report.pdf", "--json")

	require.NoError(t, err)
	var got chunkPreview
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "report.pdf", got.Title)
	assert.Equal(t, 2, got.Pages)
	require.Len(t, got.Chunks, 2)
	assert.Equal(t, chunkEntry{Position: 1, Length: 4, Content: "Bye."}, got.Chunks[1])
}

func TestChunkCmd_MaxLength(t *testing.T) {
	preview := newFakePreview()
	withServices(t, &Services{Preview: preview})

	_, err := execute(t, "chunk", "-f", "report.pdf", "--max-length", "64")

	require.NoError(t, err)
	assert.Equal(t, 64, preview.maxLength)
}

func TestChunkCmd_NegativeMaxLength(t *testing.T) {
	withServices(t, &Services{Preview: newFakePreview()})

	_, err := execute(t, "chunk", "-f", "report.pdf", "--max-length", "-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChunkCmd_RequiresFile(t *testing.T) {
	withServices(t, &Services{Preview: newFakePreview()})

	_, err := execute(t, "chunk")

	assert.Error(t, err)
}

func TestChunkCmd_PreviewError(t *testing.T) {
	preview := newFakePreview()
	preview.err = domain.ErrNoDocument
	withServices(t, &Services{Preview: preview})

	_, stderr, err := executeWithInput(t, "", "chunk", "-f", "empty.pdf")

	assert.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Equal(t, "Error: missing input: no PDF loaded\n", stderr)
}
