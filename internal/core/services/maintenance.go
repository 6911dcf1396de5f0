package services

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// Ensure MaintenanceService implements the interface.
var _ driving.CorpusMaintenance = (*MaintenanceService)(nil)

// MaintenanceService lists and bulk-deletes remote corpora.
type MaintenanceService struct {
	retriever driven.RetrieverService
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(retriever driven.RetrieverService) *MaintenanceService {
	return &MaintenanceService{retriever: retriever}
}

// ListCorpora returns all corpora visible to the credentials.
func (s *MaintenanceService) ListCorpora(ctx context.Context) ([]domain.Corpus, error) {
	if s.retriever == nil {
		return nil, domain.ErrServiceUnavailable
	}
	return s.retriever.ListCorpora(ctx)
}

// DeleteAllCorpora lists every corpus first, then force-deletes them one
// by one in listing order. The first failure stops the run; the report
// then holds the corpora deleted so far.
func (s *MaintenanceService) DeleteAllCorpora(ctx context.Context, observer driving.DeletionObserver) (*domain.DeletionReport, error) {
	if s.retriever == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if observer == nil {
		observer = func(domain.DeletionEvent) {}
	}

	corpora, err := s.retriever.ListCorpora(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.DeletionReport{
		Listed:  len(corpora),
		Deleted: make([]domain.CorpusHandle, 0, len(corpora)),
	}
	logger.Debug("found %d corpora to delete", len(corpora))

	for _, corpus := range corpora {
		observer(domain.DeletionEvent{Kind: domain.DeletionStarted, Corpus: corpus})
		if err := s.retriever.DeleteCorpus(ctx, corpus.Name, true); err != nil {
			return report, err
		}
		report.Deleted = append(report.Deleted, corpus.Name)
		observer(domain.DeletionEvent{Kind: domain.DeletionCompleted, Corpus: corpus})
	}

	return report, nil
}
