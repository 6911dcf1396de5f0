// Package domain defines the core business entities for pdfqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: the text extracted from one PDF
//   - Chunk: a bounded-length fragment of document text
//   - CorpusHandle, DocumentHandle, ChunkHandle: remote resource names
//   - Answer: a generated answer to a question about a corpus
//   - SessionState: the corpus lifecycle of an interactive session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
