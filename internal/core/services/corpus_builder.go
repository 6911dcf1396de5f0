package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// CorpusBuilder creates remote corpora and documents and fills them with chunks.
type CorpusBuilder struct {
	retriever driven.RetrieverService
}

// NewCorpusBuilder creates a new corpus builder.
func NewCorpusBuilder(retriever driven.RetrieverService) *CorpusBuilder {
	return &CorpusBuilder{retriever: retriever}
}

// CreateCorpus creates an empty corpus with the given display name.
func (b *CorpusBuilder) CreateCorpus(ctx context.Context, displayName string) (domain.CorpusHandle, error) {
	if b.retriever == nil {
		return "", domain.ErrServiceUnavailable
	}
	if strings.TrimSpace(displayName) == "" {
		return "", fmt.Errorf("%w: corpus display name is empty", domain.ErrInvalidInput)
	}

	handle, err := b.retriever.CreateCorpus(ctx, displayName)
	if err != nil {
		return "", err
	}
	logger.Debug("created corpus %s (%q)", handle, displayName)
	return handle, nil
}

// CreateDocument creates an empty document within corpus.
func (b *CorpusBuilder) CreateDocument(ctx context.Context, corpus domain.CorpusHandle, displayName string) (domain.DocumentHandle, error) {
	if b.retriever == nil {
		return "", domain.ErrServiceUnavailable
	}
	if corpus == "" {
		return "", fmt.Errorf("%w: corpus handle is empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(displayName) == "" {
		return "", fmt.Errorf("%w: document display name is empty", domain.ErrInvalidInput)
	}

	handle, err := b.retriever.CreateDocument(ctx, corpus, displayName)
	if err != nil {
		return "", err
	}
	logger.Debug("created document %s (%q)", handle, displayName)
	return handle, nil
}

// AddChunksToDocument submits chunks one at a time, in order.
// The first failure stops the loop. The handles of chunks created before
// the failure are returned with the error; nothing is rolled back.
func (b *CorpusBuilder) AddChunksToDocument(ctx context.Context, document domain.DocumentHandle, chunks []string) ([]domain.ChunkHandle, error) {
	if b.retriever == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if document == "" {
		return nil, fmt.Errorf("%w: document handle is empty", domain.ErrInvalidInput)
	}

	handles := make([]domain.ChunkHandle, 0, len(chunks))
	for i, text := range chunks {
		logger.Debug("creating chunk %d/%d (%d bytes)", i+1, len(chunks), len(text))
		handle, err := b.retriever.CreateChunk(ctx, document, text)
		if err != nil {
			return handles, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		handles = append(handles, handle)
	}

	return handles, nil
}
