package driven

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// DocumentReader reads a local file into a raw document.
type DocumentReader interface {
	// Read loads the file at path (a plain path or file:// URI).
	Read(ctx context.Context, path string) (*domain.RawDocument, error)
}
