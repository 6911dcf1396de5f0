package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.QuerySession = (*Session)(nil)

// SessionConfig holds the settings a session reads once at construction.
type SessionConfig struct {
	CorpusDisplayName   string
	DocumentDisplayName string
	MaxChunkLength      int
	ReuploadPolicy      domain.ReuploadPolicy
	Answer              domain.AnswerOptions
}

// SessionConfigFrom builds a session configuration from application settings.
func SessionConfigFrom(settings *domain.AppSettings) SessionConfig {
	return SessionConfig{
		CorpusDisplayName:   settings.Corpus.DisplayName,
		DocumentDisplayName: settings.Corpus.DocumentDisplayName,
		MaxChunkLength:      settings.Chunking.MaxLength,
		ReuploadPolicy:      settings.Session.ReuploadPolicy,
		Answer: domain.AnswerOptions{
			Style: settings.Remote.AnswerStyle,
			Model: settings.Remote.Model,
		},
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.CorpusDisplayName == "" {
		c.CorpusDisplayName = domain.DefaultCorpusDisplayName
	}
	if c.DocumentDisplayName == "" {
		c.DocumentDisplayName = domain.DefaultDocumentDisplayName
	}
	if c.MaxChunkLength <= 0 {
		c.MaxChunkLength = domain.DefaultMaxChunkLength
	}
	if !c.ReuploadPolicy.IsValid() {
		c.ReuploadPolicy = domain.ReuploadReuse
	}
	c.Answer = c.Answer.WithDefaults()
	return c
}

// Session holds one loaded PDF and the remote corpus built from it.
//
// The corpus is created lazily by the first question and then reused for
// every later question. State moves EMPTY → CORPUS_CREATED → POPULATED →
// QUERIED. A failure after the corpus exists leaves the session at
// CORPUS_CREATED, and the next attempt creates a fresh document in the
// same corpus.
type Session struct {
	// opMu serialises remote operations; mu guards the fields below it.
	opMu sync.Mutex

	mu      sync.Mutex
	doc     *domain.Document
	state   domain.SessionState
	handles domain.SessionHandles

	loader    *DocumentLoader
	builder   *CorpusBuilder
	runner    *QueryRunner
	pipelines driven.PipelineFactory
	cfg       SessionConfig
}

// NewSession creates an empty session.
func NewSession(
	loader *DocumentLoader,
	builder *CorpusBuilder,
	runner *QueryRunner,
	pipelines driven.PipelineFactory,
	cfg SessionConfig,
) *Session {
	return &Session{
		loader:    loader,
		builder:   builder,
		runner:    runner,
		pipelines: pipelines,
		cfg:       cfg.withDefaults(),
		state:     domain.SessionEmpty,
	}
}

// Load reads and extracts the PDF at path. On failure the session is left
// unchanged. When remote handles already exist, the reupload policy
// decides whether they are kept.
func (s *Session) Load(ctx context.Context, path string) (*driving.LoadResult, error) {
	if s.loader == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	stale := false

	if s.state.IsPopulated() {
		switch s.cfg.ReuploadPolicy {
		case domain.ReuploadNewDocument:
			logger.Debug("reupload: keeping corpus %s, new document on next query", s.handles.Corpus)
			s.state = domain.SessionCorpusCreated
			s.handles.Document = ""
		case domain.ReuploadNewCorpus:
			logger.Debug("reupload: discarding corpus %s", s.handles.Corpus)
			s.state = domain.SessionEmpty
			s.handles = domain.SessionHandles{}
		default:
			logger.Warn("reupload: %s was not ingested; queries still use corpus %s", doc.URI, s.handles.Corpus)
			stale = true
		}
	}

	return &driving.LoadResult{
		Document:     *doc,
		State:        s.state,
		StaleHandles: stale,
		Handles:      s.handles,
	}, nil
}

// hasText reports whether doc carries any non-whitespace text. Pages
// without text still leave their separators behind.
func hasText(doc *domain.Document) bool {
	return doc != nil && strings.TrimSpace(doc.Content) != ""
}

// Validate checks that a PDF with text is loaded and query is non-empty.
func (s *Session) Validate(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !hasText(s.doc) {
		return domain.ErrNoDocument
	}
	if strings.TrimSpace(query) == "" {
		return domain.ErrEmptyQuery
	}
	return nil
}

// NeedsIngestion returns true if the next Ask will create remote resources.
func (s *Session) NeedsIngestion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.IsPopulated()
}

// Ingest creates the corpus and document and submits the chunks of the
// loaded text. It does nothing once the session is populated.
func (s *Session) Ingest(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.ingest(ctx)
}

// ingest runs with opMu held.
func (s *Session) ingest(ctx context.Context) error {
	s.mu.Lock()
	doc, state, handles := s.doc, s.state, s.handles
	s.mu.Unlock()

	if !hasText(doc) {
		return domain.ErrNoDocument
	}
	if state.IsPopulated() {
		return nil
	}
	if s.builder == nil || s.pipelines == nil {
		return domain.ErrNotImplemented
	}

	pipeline, err := s.pipelines(s.cfg.MaxChunkLength)
	if err != nil {
		return fmt.Errorf("build chunking pipeline: %w", err)
	}
	chunks, err := pipeline.Process(ctx, doc)
	if err != nil {
		return fmt.Errorf("chunk document: %w", err)
	}
	logger.Debug("split %d bytes into %d chunks", len(doc.Content), len(chunks))
	if len(chunks) == 0 {
		return domain.ErrNoDocument
	}

	if state == domain.SessionEmpty {
		corpus, err := s.builder.CreateCorpus(ctx, s.cfg.CorpusDisplayName)
		if err != nil {
			return err
		}
		handles = domain.SessionHandles{Corpus: corpus}
		s.transition(domain.SessionCorpusCreated, handles)
	}

	document, err := s.builder.CreateDocument(ctx, handles.Corpus, s.cfg.DocumentDisplayName)
	if err != nil {
		return err
	}
	handles.Document = document
	s.transition(domain.SessionCorpusCreated, handles)

	if _, err := s.builder.AddChunksToDocument(ctx, document, domain.ChunkContents(chunks)); err != nil {
		return err
	}
	s.transition(domain.SessionPopulated, handles)

	return nil
}

// Ask validates query, ingests the loaded text if needed, and answers
// query from the session's corpus.
func (s *Session) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	if err := s.Validate(query); err != nil {
		return nil, err
	}
	if s.runner == nil {
		return nil, domain.ErrNotImplemented
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.ingest(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	handles := s.handles
	s.mu.Unlock()

	answer, err := s.runner.GenerateAnswer(ctx, handles.Corpus, query, s.cfg.Answer)
	if err != nil {
		return nil, err
	}

	s.transition(domain.SessionQueried, handles)
	return answer, nil
}

// State returns the current corpus lifecycle state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Handles returns the session's remote handles.
func (s *Session) Handles() domain.SessionHandles {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handles
}

// Document returns the loaded document, or nil.
func (s *Session) Document() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Session) transition(state domain.SessionState, handles domain.SessionHandles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != state {
		logger.Debug("session: %s -> %s", s.state, state)
	}
	s.state = state
	s.handles = handles
}
