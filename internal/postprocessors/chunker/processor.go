// Package chunker provides a sentence-length text chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// DefaultMaxLength is the default maximum chunk length in characters.
const DefaultMaxLength = domain.DefaultMaxChunkLength

// Delimiter separates sentence-like units. Splitting is purely lexical:
// abbreviations and decimal numbers are not recognised.
const Delimiter = ". "

// Processor splits document content into sentence-aligned chunks.
// It implements the PostProcessor interface.
type Processor struct {
	maxLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxLength sets the maximum chunk length in characters.
func WithMaxLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxLength: DefaultMaxLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// MaxLength returns the configured maximum chunk length.
func (p *Processor) MaxLength() int {
	return p.maxLength
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := Split(doc.Content, p.maxLength)
	if len(parts) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, content := range parts {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content,
			Position:   i,
			Metadata:   make(map[string]any),
		})
	}

	return chunks, nil
}

// Split breaks text into chunks of at most maxLength characters on ". "
// boundaries. Lengths count runes, not bytes.
//
// Units are accumulated into a buffer. When the next unit would push the
// buffer past maxLength the buffer is flushed (trimmed) and restarted with
// the unit and a single period; otherwise the unit is appended with ". ".
// A unit longer than maxLength is never split, so it becomes an oversized
// chunk of its own. The text after the last delimiter keeps its own
// terminator: it gains a period only if it does not already end in one.
func Split(text string, maxLength int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	units := strings.Split(text, Delimiter)
	last := len(units) - 1

	var chunks []string
	var buf strings.Builder
	n := 0 // runes in buf

	write := func(s string) {
		buf.WriteString(s)
		n += utf8.RuneCountInString(s)
	}
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
		n = 0
	}

	for i, unit := range units {
		if i == last && unit == "" {
			break
		}

		if n+utf8.RuneCountInString(unit)+1 > maxLength {
			flush()
			write(unit)
			if i != last || !strings.HasSuffix(unit, ".") {
				write(".")
			}
			continue
		}

		write(unit)
		switch {
		case i != last:
			write(Delimiter)
		case !strings.HasSuffix(unit, "."):
			write(".")
		}
	}
	flush()

	if chunks == nil {
		return []string{}
	}
	return chunks
}
