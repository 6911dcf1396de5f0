// Package pdf extracts the text of PDF documents.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// PageSeparator joins the text of consecutive pages.
const PageSeparator = " "

// ErrInvalidPDF indicates the bytes could not be parsed as a PDF.
var ErrInvalidPDF = errors.New("pdf: cannot parse document")

// PageSource exposes the pages of an opened PDF.
type PageSource interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the plain text of page i (1-based).
	// skip is true for null pages, which contribute nothing.
	PageText(i int) (text string, skip bool, err error)
}

// OpenFunc opens PDF bytes as a PageSource.
type OpenFunc func(content []byte) (PageSource, error)

// Normaliser extracts page text from PDF documents.
type Normaliser struct {
	open OpenFunc
}

// New creates a PDF normaliser backed by github.com/ledongthuc/pdf.
func New() *Normaliser {
	return NewWithOpener(openReader)
}

// NewWithOpener creates a PDF normaliser with a custom opener.
func NewWithOpener(open OpenFunc) *Normaliser {
	return &Normaliser{open: open}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Normalise extracts the text of every non-null page, in order, joined by
// single spaces. The title is derived from the file name.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if raw.MIMEType != "application/pdf" {
		return nil, fmt.Errorf("%w: %s is %s, not a PDF", domain.ErrUnsupportedType, filepath.Base(raw.URI), raw.MIMEType)
	}

	src, err := n.open(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPDF, filepath.Base(raw.URI), err)
	}

	pages := make([]string, 0, src.NumPage())
	for i := 1; i <= src.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, skip, err := src.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrInvalidPDF, i, err)
		}
		if skip {
			continue
		}
		pages = append(pages, text)
	}

	logger.Debug("extracted %d of %d pages from %s", len(pages), src.NumPage(), raw.URI)

	metadata := copyMetadata(raw.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}
	metadata["mime_type"] = raw.MIMEType
	metadata["format"] = "pdf"

	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:        uuid.New().String(),
			URI:       raw.URI,
			Title:     extractTitle(raw.URI),
			Content:   strings.Join(pages, PageSeparator),
			PageCount: src.NumPage(),
			Metadata:  metadata,
			LoadedAt:  time.Now(),
		},
	}, nil
}

// extractTitle turns a file name such as "annual_report-2024.pdf" into
// "annual report 2024".
func extractTitle(uri string) string {
	base := filepath.Base(uri)
	if base == "." || base == "/" {
		return ""
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// copyMetadata returns a shallow copy of src, or nil for a nil map.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ledongthucSource adapts *pdf.Reader to PageSource.
type ledongthucSource struct {
	r *pdf.Reader
}

func openReader(content []byte) (src PageSource, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("parse: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}
	return &ledongthucSource{r: r}, nil
}

func (s *ledongthucSource) NumPage() int {
	return s.r.NumPage()
}

func (s *ledongthucSource) PageText(i int) (text string, skip bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, skip, err = "", false, fmt.Errorf("extract text: %v", r)
		}
	}()

	p := s.r.Page(i)
	if p.V.IsNull() {
		return "", true, nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", false, err
	}
	return text, false, nil
}
