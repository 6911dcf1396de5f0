package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMain, "main"},
		{ViewFilePicker, "file_picker"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestField_StringAndNext(t *testing.T) {
	assert.Equal(t, "path", FieldPath.String())
	assert.Equal(t, "query", FieldQuery.String())
	assert.Equal(t, "unknown", Field(7).String())

	assert.Equal(t, FieldQuery, FieldPath.Next())
	assert.Equal(t, FieldPath, FieldQuery.Next())
}

func TestMessages_CarryPayloads(t *testing.T) {
	loaded := PDFLoaded{
		Path:   "/tmp/a.pdf",
		Result: &driving.LoadResult{State: domain.SessionEmpty},
	}
	assert.Equal(t, domain.SessionEmpty, loaded.Result.State)

	ingest := IngestCompleted{Query: "why?", Err: errors.New("quota")}
	assert.EqualError(t, ingest.Err, "quota")

	answer := AnswerReceived{Query: "why?", Answer: &domain.Answer{Text: "because"}}
	assert.Equal(t, "because", answer.Answer.Text)
	assert.NoError(t, answer.Err)
}
