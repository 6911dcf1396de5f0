// Package filesystem reads local files into raw documents.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

// MIMETypePDF is the content type of PDF files.
const MIMETypePDF = "application/pdf"

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// DefaultMaxFileSize caps the size of a file read into memory.
const DefaultMaxFileSize int64 = 256 << 20

// Reader loads local files into memory.
type Reader struct {
	maxSize int64
}

// NewReader creates a reader. A non-positive maxSize uses DefaultMaxFileSize.
func NewReader(maxSize int64) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Reader{maxSize: maxSize}
}

// Read loads the file at path, which may be a plain path or a file:// URI.
func (r *Reader) Read(ctx context.Context, path string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := ResolvePath(path)
	if resolved == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, resolved)
		}
		return nil, fmt.Errorf("stat %s: %w", resolved, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, resolved)
	}
	if info.Size() > r.maxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrInvalidInput, resolved, r.maxSize)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", resolved, err)
	}

	mimeType := detectMIMEType(resolved, content)
	logger.Debug("read %s (%d bytes, %s)", resolved, len(content), mimeType)

	return &domain.RawDocument{
		URI:      resolved,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{
			"size":     info.Size(),
			"modified": info.ModTime(),
		},
	}, nil
}

// ResolvePath converts a file:// URI to a local path. Bare paths pass
// through unchanged apart from surrounding whitespace and quotes, which
// terminals add when a file is dragged in.
func ResolvePath(uri string) string {
	uri = strings.Trim(strings.TrimSpace(uri), `"'`)
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return u.Path
	}
	return strings.TrimPrefix(uri, "file://")
}

// detectMIMEType identifies PDFs by their header, then falls back to the
// file extension.
func detectMIMEType(path string, content []byte) string {
	if bytes.HasPrefix(content, pdfMagic) {
		return MIMETypePDF
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "application/octet-stream"
	}
	if ext == ".pdf" {
		return MIMETypePDF
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.Index(t, ";"); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "application/octet-stream"
}
