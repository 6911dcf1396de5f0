package genai

import (
	"context"
	"errors"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/iterator"

	"github.com/custodia-labs/pdfqa-cli/internal/connectors/google"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
)

// Ensure Retriever implements the interface.
var _ driven.RetrieverService = (*Retriever)(nil)

// Retriever manages corpora, documents and chunks on the semantic retriever.
type Retriever struct {
	api     RetrieverAPI
	limiter *google.RateLimiter
}

// NewRetriever creates a Retriever from a connected client.
func NewRetriever(client *generativelanguage.RetrieverClient, limiter *google.RateLimiter) *Retriever {
	return NewRetrieverWithAPI(retrieverClient{client}, limiter)
}

// NewRetrieverWithAPI creates a Retriever over any RetrieverAPI.
// A nil limiter disables rate limiting.
func NewRetrieverWithAPI(api RetrieverAPI, limiter *google.RateLimiter) *Retriever {
	return &Retriever{api: api, limiter: limiter}
}

// CreateCorpus creates an empty corpus and returns its handle.
func (r *Retriever) CreateCorpus(ctx context.Context, displayName string) (domain.CorpusHandle, error) {
	var corpus *generativelanguagepb.Corpus
	err := call(ctx, r.limiter, "create corpus", func() error {
		var err error
		corpus, err = r.api.CreateCorpus(ctx, &generativelanguagepb.CreateCorpusRequest{
			Corpus: &generativelanguagepb.Corpus{DisplayName: displayName},
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return domain.CorpusHandle(corpus.GetName()), nil
}

// CreateDocument creates an empty document within a corpus.
func (r *Retriever) CreateDocument(ctx context.Context, corpus domain.CorpusHandle, displayName string) (domain.DocumentHandle, error) {
	var doc *generativelanguagepb.Document
	err := call(ctx, r.limiter, "create document", func() error {
		var err error
		doc, err = r.api.CreateDocument(ctx, &generativelanguagepb.CreateDocumentRequest{
			Parent:   corpus.String(),
			Document: &generativelanguagepb.Document{DisplayName: displayName},
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return domain.DocumentHandle(doc.GetName()), nil
}

// CreateChunk submits one chunk of text for indexing.
func (r *Retriever) CreateChunk(ctx context.Context, document domain.DocumentHandle, text string) (domain.ChunkHandle, error) {
	var chunk *generativelanguagepb.Chunk
	err := call(ctx, r.limiter, "create chunk", func() error {
		var err error
		chunk, err = r.api.CreateChunk(ctx, &generativelanguagepb.CreateChunkRequest{
			Parent: document.String(),
			Chunk: &generativelanguagepb.Chunk{
				Data: &generativelanguagepb.ChunkData{
					Data: &generativelanguagepb.ChunkData_StringValue{StringValue: text},
				},
			},
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return domain.ChunkHandle(chunk.GetName()), nil
}

// ListCorpora returns every corpus visible to the credentials, following
// pagination until the iterator is exhausted.
func (r *Retriever) ListCorpora(ctx context.Context) ([]domain.Corpus, error) {
	var corpora []domain.Corpus
	err := call(ctx, r.limiter, "list corpora", func() error {
		it := r.api.ListCorpora(ctx, &generativelanguagepb.ListCorporaRequest{})
		for {
			c, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return nil
			}
			if err != nil {
				return err
			}
			corpora = append(corpora, toDomainCorpus(c))
		}
	})
	if err != nil {
		return nil, err
	}
	if corpora == nil {
		corpora = []domain.Corpus{}
	}
	return corpora, nil
}

// DeleteCorpus deletes a corpus, cascading to its contents when force is set.
func (r *Retriever) DeleteCorpus(ctx context.Context, corpus domain.CorpusHandle, force bool) error {
	return call(ctx, r.limiter, "delete corpus "+corpus.String(), func() error {
		return r.api.DeleteCorpus(ctx, &generativelanguagepb.DeleteCorpusRequest{
			Name:  corpus.String(),
			Force: force,
		})
	})
}

func toDomainCorpus(c *generativelanguagepb.Corpus) domain.Corpus {
	out := domain.Corpus{
		Name:        domain.CorpusHandle(c.GetName()),
		DisplayName: c.GetDisplayName(),
	}
	if ts := c.GetCreateTime(); ts != nil {
		out.CreateTime = ts.AsTime()
	}
	if ts := c.GetUpdateTime(); ts != nil {
		out.UpdateTime = ts.AsTime()
	}
	return out
}
