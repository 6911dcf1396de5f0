package services

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/postprocessors"
)

// stubReader returns an empty PDF for any path, or err if set.
type stubReader struct {
	err   error
	reads int
}

func (r *stubReader) Read(_ context.Context, path string) (*domain.RawDocument, error) {
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	return &domain.RawDocument{URI: path, MIMEType: "application/pdf"}, nil
}

// stubNormaliser returns the text registered for a path.
type stubNormaliser struct {
	texts map[string]string
}

func (n *stubNormaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

func (n *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Document: domain.Document{
		ID:      raw.URI,
		URI:     raw.URI,
		Content: n.texts[raw.URI],
	}}, nil
}

type sessionFixture struct {
	session   *Session
	retriever *memory.Retriever
	reader    *stubReader
}

func newSessionFixture(cfg SessionConfig, texts map[string]string) *sessionFixture {
	retriever := memory.NewRetriever()
	reader := &stubReader{}
	loader := NewDocumentLoader(reader, &stubNormaliser{texts: texts})

	session := NewSession(
		loader,
		NewCorpusBuilder(retriever),
		NewQueryRunner(retriever, domain.AnswerOptions{}),
		postprocessors.ChunkingPipelineFactory,
		cfg,
	)

	return &sessionFixture{session: session, retriever: retriever, reader: reader}
}

// remoteCalls returns the number of calls made to the fake remote service.
func (f *sessionFixture) remoteCalls() int {
	return len(f.retriever.Calls())
}
