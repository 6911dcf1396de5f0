package services

import (
	"context"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
)

// DocumentLoader reads a file and extracts its text.
type DocumentLoader struct {
	reader     driven.DocumentReader
	normaliser driven.Normaliser
}

// NewDocumentLoader creates a loader from a reader and a normaliser.
func NewDocumentLoader(reader driven.DocumentReader, normaliser driven.Normaliser) *DocumentLoader {
	return &DocumentLoader{reader: reader, normaliser: normaliser}
}

// Load reads the file at path and returns the extracted document.
func (l *DocumentLoader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if l.reader == nil || l.normaliser == nil {
		return nil, domain.ErrNotImplemented
	}

	raw, err := l.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := l.normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	doc := result.Document
	return &doc, nil
}
