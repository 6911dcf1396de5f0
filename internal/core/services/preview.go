package services

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// Ensure PreviewService implements the interface.
var _ driving.ChunkPreview = (*PreviewService)(nil)

// PreviewService shows how a PDF would be chunked without any remote call.
type PreviewService struct {
	loader           *DocumentLoader
	pipelines        driven.PipelineFactory
	defaultMaxLength int
}

// NewPreviewService creates a preview service. defaultMaxLength applies
// when Preview is called with zero.
func NewPreviewService(loader *DocumentLoader, pipelines driven.PipelineFactory, defaultMaxLength int) *PreviewService {
	if defaultMaxLength <= 0 {
		defaultMaxLength = domain.DefaultMaxChunkLength
	}
	return &PreviewService{
		loader:           loader,
		pipelines:        pipelines,
		defaultMaxLength: defaultMaxLength,
	}
}

// Preview loads the PDF at path and returns it with its chunks.
func (s *PreviewService) Preview(ctx context.Context, path string, maxLength int) (*domain.Document, []domain.Chunk, error) {
	if s.loader == nil || s.pipelines == nil {
		return nil, nil, domain.ErrNotImplemented
	}
	if maxLength <= 0 {
		maxLength = s.defaultMaxLength
	}

	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := s.pipelines(maxLength)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := pipeline.Process(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	return doc, chunks, nil
}
