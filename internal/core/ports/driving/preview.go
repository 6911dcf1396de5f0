package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// ChunkPreview extracts and chunks a PDF without contacting the remote service.
type ChunkPreview interface {
	// Preview returns the document and the chunks that would be ingested.
	// A maxLength of zero uses the configured length.
	Preview(ctx context.Context, path string, maxLength int) (*domain.Document, []domain.Chunk, error)
}
