package driving

import (
	"fmt"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

// Status lines shown by every front end, in the order a session produces them.
const (
	MsgUploaded     = "PDF uploaded successfully. Ready for querying."
	MsgMissingInput = "Please upload a PDF and enter a query first."
	MsgProcessing   = "Processing the PDF..."
	MsgGenerating   = "Generating response..."
)

// FormatAnswer renders a query and its answer as two lines.
func FormatAnswer(query, answer string) string {
	return fmt.Sprintf("Query: %s\nAnswer: %s", query, answer)
}

// FormatError renders an error line.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// StaleWarning explains that a newly loaded PDF was not ingested because
// the session kept the handles of an earlier one.
func StaleWarning(doc domain.Document, handles domain.SessionHandles) string {
	return fmt.Sprintf(
		"Warning: %s was not ingested; questions are still answered from corpus %s. "+
			"Set session.reupload_policy to new_document or new_corpus to index each upload.",
		doc.Title, handles.Corpus)
}
