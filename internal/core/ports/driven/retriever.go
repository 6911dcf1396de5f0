package driven

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// RetrieverService manages corpora, documents and chunks on the remote
// retrieval service. Every method is a single blocking remote call.
// Failures are returned as *domain.ServiceError.
type RetrieverService interface {
	// CreateCorpus creates an empty corpus and returns its handle.
	CreateCorpus(ctx context.Context, displayName string) (domain.CorpusHandle, error)

	// CreateDocument creates an empty document within a corpus.
	CreateDocument(ctx context.Context, corpus domain.CorpusHandle, displayName string) (domain.DocumentHandle, error)

	// CreateChunk submits one chunk of text for indexing.
	CreateChunk(ctx context.Context, document domain.DocumentHandle, text string) (domain.ChunkHandle, error)

	// ListCorpora returns every corpus visible to the current credentials,
	// in the order returned by the service.
	ListCorpora(ctx context.Context) ([]domain.Corpus, error)

	// DeleteCorpus deletes a corpus. With force set, contained documents
	// and chunks are deleted as well.
	DeleteCorpus(ctx context.Context, corpus domain.CorpusHandle, force bool) error
}
