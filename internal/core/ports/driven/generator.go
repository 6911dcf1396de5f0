package driven

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// AnswerGenerator generates grounded answers from a corpus.
type AnswerGenerator interface {
	// GenerateAnswer asks the service to answer req.Query using req.Corpus
	// as the retrieval source. Returns a *domain.ServiceError wrapping
	// domain.ErrNoAnswer when the service produces no answer text.
	GenerateAnswer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error)
}
