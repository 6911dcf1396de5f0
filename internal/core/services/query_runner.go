package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// QueryRunner asks grounded questions against a corpus.
type QueryRunner struct {
	generator driven.AnswerGenerator
	defaults  domain.AnswerOptions
}

// NewQueryRunner creates a query runner. defaults fill in options left
// empty by callers; empty defaults mean abstractive answers from models/aqa.
func NewQueryRunner(generator driven.AnswerGenerator, defaults domain.AnswerOptions) *QueryRunner {
	return &QueryRunner{
		generator: generator,
		defaults:  defaults.WithDefaults(),
	}
}

// GenerateAnswer answers query using corpus as the grounding source.
func (r *QueryRunner) GenerateAnswer(ctx context.Context, corpus domain.CorpusHandle, query string, opts domain.AnswerOptions) (*domain.Answer, error) {
	if r.generator == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if corpus == "" {
		return nil, fmt.Errorf("%w: corpus handle is empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	if opts.Style == "" {
		opts.Style = r.defaults.Style
	}
	if opts.Model == "" {
		opts.Model = r.defaults.Model
	}
	if !opts.Style.IsValid() {
		return nil, fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, opts.Style)
	}

	logger.Debug("generating %s answer with %s from %s", opts.Style, opts.Model, corpus)
	return r.generator.GenerateAnswer(ctx, domain.AnswerRequest{
		Corpus: corpus,
		Query:  query,
		Style:  opts.Style,
		Model:  opts.Model,
	})
}
