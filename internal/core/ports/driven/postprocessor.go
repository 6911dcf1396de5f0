package driven

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// PostProcessor turns document content into chunks.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks.
	// A processor that creates chunks (e.g., chunker) receives nil and
	// returns new chunks; later processors receive and return chunks.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	// Returns the final chunks after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}

// PipelineFactory builds a chunking pipeline for a maximum chunk length.
type PipelineFactory func(maxLength int) (PostProcessorPipeline, error)
