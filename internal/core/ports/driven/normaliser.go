package driven

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// Normaliser extracts document text from raw bytes.
// Each normaliser handles specific MIME types (e.g., PDF).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise transforms a raw document into a document with Content set.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}
