package genai

import (
	"context"
	"fmt"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"

	"github.com/custodia-labs/pdfqa-cli/internal/connectors/google"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// Generator produces answers grounded in a corpus via the semantic retriever.
type Generator struct {
	api     GenerativeAPI
	limiter *google.RateLimiter
}

// NewGenerator creates a Generator from a connected client.
func NewGenerator(client *generativelanguage.GenerativeClient, limiter *google.RateLimiter) *Generator {
	return NewGeneratorWithAPI(client, limiter)
}

// NewGeneratorWithAPI creates a Generator over any GenerativeAPI.
// A nil limiter disables rate limiting.
func NewGeneratorWithAPI(api GenerativeAPI, limiter *google.RateLimiter) *Generator {
	return &Generator{api: api, limiter: limiter}
}

// GenerateAnswer asks the model to answer req.Query with req.Corpus as the
// only grounding source. The query doubles as the retrieval query.
func (g *Generator) GenerateAnswer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	opts := domain.AnswerOptions{Style: req.Style, Model: req.Model}.WithDefaults()
	style, ok := answerStyles[opts.Style]
	if !ok {
		return nil, fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, opts.Style)
	}

	content := &generativelanguagepb.Content{
		Parts: []*generativelanguagepb.Part{
			{Data: &generativelanguagepb.Part_Text{Text: req.Query}},
		},
	}

	var resp *generativelanguagepb.GenerateAnswerResponse
	err := call(ctx, g.limiter, "generate answer", func() error {
		var err error
		resp, err = g.api.GenerateAnswer(ctx, &generativelanguagepb.GenerateAnswerRequest{
			Model:       opts.Model,
			Contents:    []*generativelanguagepb.Content{content},
			AnswerStyle: style,
			GroundingSource: &generativelanguagepb.GenerateAnswerRequest_SemanticRetriever{
				SemanticRetriever: &generativelanguagepb.SemanticRetrieverConfig{
					Source: req.Corpus.String(),
					Query:  content,
				},
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	text, ok := firstText(resp.GetAnswer().GetContent().GetParts())
	if !ok {
		if reason := resp.GetInputFeedback().GetBlockReason(); reason != generativelanguagepb.GenerateAnswerResponse_InputFeedback_BLOCK_REASON_UNSPECIFIED {
			return nil, domain.NewServiceError("generate answer",
				fmt.Errorf("%w: input blocked (%s)", domain.ErrNoAnswer, reason))
		}
		return nil, domain.NewServiceError("generate answer", domain.ErrNoAnswer)
	}

	return &domain.Answer{
		Text:                  text,
		Query:                 req.Query,
		Style:                 opts.Style,
		Model:                 opts.Model,
		Corpus:                req.Corpus,
		AnswerableProbability: resp.GetAnswerableProbability(),
	}, nil
}

// firstText returns the first part carrying non-empty text. Parts may
// hold inline data or function calls instead.
func firstText(parts []*generativelanguagepb.Part) (string, bool) {
	for _, p := range parts {
		if text := p.GetText(); text != "" {
			return text, true
		}
	}
	return "", false
}

var answerStyles = map[domain.AnswerStyle]generativelanguagepb.GenerateAnswerRequest_AnswerStyle{
	domain.AnswerStyleAbstractive: generativelanguagepb.GenerateAnswerRequest_ABSTRACTIVE,
	domain.AnswerStyleExtractive:  generativelanguagepb.GenerateAnswerRequest_EXTRACTIVE,
	domain.AnswerStyleVerbose:     generativelanguagepb.GenerateAnswerRequest_VERBOSE,
}
