package domain

import "time"

// Document holds the text extracted from one source file.
// Content is immutable once loaded; a new file produces a new Document.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text after extraction.
	// For PDFs this is every page's text joined with single spaces.
	Content string

	// PageCount is the number of pages the content was extracted from.
	PageCount int

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// LoadedAt is when the document was read.
	LoadedAt time.Time
}

// Chunk is a bounded-length fragment of document text submitted for indexing.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// ChunkContents returns the text of each chunk in order.
func ChunkContents(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Content
	}
	return out
}
