package driving

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// LoadResult describes a PDF loaded into a session.
type LoadResult struct {
	// Document is the extracted document text.
	Document domain.Document

	// State is the session state after loading.
	State domain.SessionState

	// StaleHandles is true when the session kept remote handles created for
	// a previously loaded PDF. Queries will run against that earlier
	// corpus, not against the newly loaded text.
	StaleHandles bool

	// Handles are the session's remote handles after loading.
	Handles domain.SessionHandles
}

// QuerySession is the interactive question-answering workflow:
// load a PDF, then ask questions about it. The first question after a
// load ingests the text into a remote corpus.
type QuerySession interface {
	// Load reads and extracts the PDF at path.
	Load(ctx context.Context, path string) (*LoadResult, error)

	// Validate checks that a PDF is loaded and query is non-empty.
	// Returns an error wrapping domain.ErrMissingInput otherwise.
	Validate(query string) error

	// NeedsIngestion returns true if the next Ask will ingest the loaded text.
	NeedsIngestion() bool

	// Ingest creates the corpus and document and submits the chunks.
	Ingest(ctx context.Context) error

	// Ask validates the query, ingests if needed and generates an answer.
	Ask(ctx context.Context, query string) (*domain.Answer, error)

	// State returns the current corpus lifecycle state.
	State() domain.SessionState

	// Handles returns the session's remote handles.
	Handles() domain.SessionHandles
}

// SessionOptions override configured settings for one session.
// Zero values keep the configured setting.
type SessionOptions struct {
	Style     domain.AnswerStyle
	Model     string
	MaxLength int

	// Offline runs the session against an in-process retriever instead of
	// the remote service.
	Offline bool
}

// SessionFactory creates a new, empty query session.
type SessionFactory func(opts SessionOptions) (QuerySession, error)
