package domain

import "strings"

// DefaultAnswerModel is the model specialised for answering from quoted sources.
const DefaultAnswerModel = "models/aqa"

// AnswerStyle controls how the service phrases a generated answer.
type AnswerStyle string

// Available answer styles.
const (
	// AnswerStyleAbstractive synthesises an answer in new wording.
	AnswerStyleAbstractive AnswerStyle = "ABSTRACTIVE"

	// AnswerStyleExtractive quotes the source passages verbatim.
	AnswerStyleExtractive AnswerStyle = "EXTRACTIVE"

	// AnswerStyleVerbose produces a longer, detailed answer.
	AnswerStyleVerbose AnswerStyle = "VERBOSE"
)

// ParseAnswerStyle converts a case-insensitive name into an AnswerStyle.
// An empty name yields the default abstractive style.
func ParseAnswerStyle(s string) (AnswerStyle, bool) {
	if strings.TrimSpace(s) == "" {
		return AnswerStyleAbstractive, true
	}
	style := AnswerStyle(strings.ToUpper(strings.TrimSpace(s)))
	return style, style.IsValid()
}

// IsValid returns true if the answer style is recognised.
func (s AnswerStyle) IsValid() bool {
	switch s {
	case AnswerStyleAbstractive, AnswerStyleExtractive, AnswerStyleVerbose:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s AnswerStyle) String() string {
	return string(s)
}

// Description returns a human-readable description of the style.
func (s AnswerStyle) Description() string {
	switch s {
	case AnswerStyleAbstractive:
		return "Abstractive (synthesised answer)"
	case AnswerStyleExtractive:
		return "Extractive (quoted passages)"
	case AnswerStyleVerbose:
		return "Verbose (detailed answer)"
	default:
		return "Unknown"
	}
}

// AllAnswerStyles returns all available answer styles.
func AllAnswerStyles() []AnswerStyle {
	return []AnswerStyle{
		AnswerStyleAbstractive,
		AnswerStyleExtractive,
		AnswerStyleVerbose,
	}
}

// AnswerOptions selects the style and model of a generated answer.
// Zero values fall back to the abstractive style and the default model.
type AnswerOptions struct {
	Style AnswerStyle
	Model string
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o AnswerOptions) WithDefaults() AnswerOptions {
	if o.Style == "" {
		o.Style = AnswerStyleAbstractive
	}
	if o.Model == "" {
		o.Model = DefaultAnswerModel
	}
	return o
}

// AnswerRequest is a fully resolved question against a corpus.
type AnswerRequest struct {
	Corpus CorpusHandle
	Query  string
	Style  AnswerStyle
	Model  string
}

// Answer is a generated answer plus the request that produced it.
// Answers are transient and never persisted.
type Answer struct {
	// Text is the first text part of the answer payload.
	Text string `json:"answer"`

	// Query is the question that was asked.
	Query string `json:"query"`

	// Style is the answer style used.
	Style AnswerStyle `json:"style"`

	// Model is the model identifier used.
	Model string `json:"model"`

	// Corpus is the retrieval source.
	Corpus CorpusHandle `json:"corpus"`

	// AnswerableProbability is the service's estimate that the answer is
	// grounded in the corpus, between 0 and 1.
	AnswerableProbability float32 `json:"answerable_probability"`
}
