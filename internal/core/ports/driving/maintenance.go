package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// DeletionObserver receives progress of a bulk corpus deletion.
type DeletionObserver func(event domain.DeletionEvent)

// CorpusMaintenance manages the remote corpora owned by the credentials.
type CorpusMaintenance interface {
	// ListCorpora returns all corpora visible to the credentials.
	ListCorpora(ctx context.Context) ([]domain.Corpus, error)

	// DeleteAllCorpora force-deletes every corpus, sequentially, in listing
	// order. The first failure stops the run.
	DeleteAllCorpora(ctx context.Context, observer DeletionObserver) (*domain.DeletionReport, error)
}
