// Package genai provides retriever and answer generation adapters backed by
// the Generative Language semantic retriever API.
package genai

import (
	"context"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/googleapis/gax-go/v2"

	"github.com/custodia-labs/pdfqa-cli/internal/connectors/google"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// CorpusIterator yields corpora until it returns iterator.Done.
type CorpusIterator interface {
	Next() (*generativelanguagepb.Corpus, error)
}

// RetrieverAPI is the subset of the retriever client used by Retriever.
type RetrieverAPI interface {
	CreateCorpus(ctx context.Context, req *generativelanguagepb.CreateCorpusRequest, opts ...gax.CallOption) (*generativelanguagepb.Corpus, error)
	CreateDocument(ctx context.Context, req *generativelanguagepb.CreateDocumentRequest, opts ...gax.CallOption) (*generativelanguagepb.Document, error)
	CreateChunk(ctx context.Context, req *generativelanguagepb.CreateChunkRequest, opts ...gax.CallOption) (*generativelanguagepb.Chunk, error)
	ListCorpora(ctx context.Context, req *generativelanguagepb.ListCorporaRequest) CorpusIterator
	DeleteCorpus(ctx context.Context, req *generativelanguagepb.DeleteCorpusRequest, opts ...gax.CallOption) error
}

// GenerativeAPI is the subset of the generative client used by Generator.
type GenerativeAPI interface {
	GenerateAnswer(ctx context.Context, req *generativelanguagepb.GenerateAnswerRequest, opts ...gax.CallOption) (*generativelanguagepb.GenerateAnswerResponse, error)
}

// Ensure the generative client satisfies GenerativeAPI.
var _ GenerativeAPI = (*generativelanguage.GenerativeClient)(nil)

// retrieverClient narrows the concrete iterator type of the retriever client.
type retrieverClient struct {
	*generativelanguage.RetrieverClient
}

func (c retrieverClient) ListCorpora(ctx context.Context, req *generativelanguagepb.ListCorporaRequest) CorpusIterator {
	return c.RetrieverClient.ListCorpora(ctx, req)
}

// call runs one remote operation behind the rate limiter and converts any
// failure into a *domain.ServiceError tagged with op.
func call(ctx context.Context, limiter *google.RateLimiter, op string, fn func() error) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return domain.NewServiceError(op, err)
		}
	}

	logger.Debug("genai: %s", op)
	err := fn()
	if err == nil {
		return nil
	}

	if limiter != nil {
		limiter.Observe(err)
	}
	logger.Debug("genai: %s failed: %v", op, err)
	return domain.NewServiceError(op, google.WrapError(err))
}
