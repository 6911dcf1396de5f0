// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// PDFLoaded carries the outcome of loading a PDF into the session.
type PDFLoaded struct {
	Path   string
	Result *driving.LoadResult
	Err    error
}

// IngestCompleted signals that the loaded text was indexed, or why not.
// Query is the question waiting for the ingestion.
type IngestCompleted struct {
	Query string
	Err   error
}

// AnswerReceived carries a generated answer back to the model.
type AnswerReceived struct {
	Query  string
	Answer *domain.Answer
	Err    error
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMain shows the inputs and the output log.
	ViewMain ViewType = iota
	// ViewFilePicker browses the filesystem for a PDF.
	ViewFilePicker
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMain:
		return "main"
	case ViewFilePicker:
		return "file_picker"
	default:
		return "unknown"
	}
}

// Field identifies the focused input on the main view.
type Field int

const (
	// FieldPath is the PDF path input.
	FieldPath Field = iota
	// FieldQuery is the question input.
	FieldQuery
)

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldPath:
		return "path"
	case FieldQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Next returns the field that tab moves focus to.
func (f Field) Next() Field {
	if f == FieldPath {
		return FieldQuery
	}
	return FieldPath
}
