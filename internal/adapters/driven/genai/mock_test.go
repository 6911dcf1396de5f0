package genai

import (
	"context"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/iterator"
)

type mockRetrieverAPI struct {
	createCorpusReqs   []*generativelanguagepb.CreateCorpusRequest
	createDocumentReqs []*generativelanguagepb.CreateDocumentRequest
	createChunkReqs    []*generativelanguagepb.CreateChunkRequest
	deleteReqs         []*generativelanguagepb.DeleteCorpusRequest

	corpora    []*generativelanguagepb.Corpus
	listErr    error
	createErr  error
	deleteErr  error
	chunkCount int
}

func (m *mockRetrieverAPI) CreateCorpus(_ context.Context, req *generativelanguagepb.CreateCorpusRequest, _ ...gax.CallOption) (*generativelanguagepb.Corpus, error) {
	m.createCorpusReqs = append(m.createCorpusReqs, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &generativelanguagepb.Corpus{Name: "corpora/abc", DisplayName: req.GetCorpus().GetDisplayName()}, nil
}

func (m *mockRetrieverAPI) CreateDocument(_ context.Context, req *generativelanguagepb.CreateDocumentRequest, _ ...gax.CallOption) (*generativelanguagepb.Document, error) {
	m.createDocumentReqs = append(m.createDocumentReqs, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &generativelanguagepb.Document{Name: req.GetParent() + "/documents/doc1"}, nil
}

func (m *mockRetrieverAPI) CreateChunk(_ context.Context, req *generativelanguagepb.CreateChunkRequest, _ ...gax.CallOption) (*generativelanguagepb.Chunk, error) {
	m.createChunkReqs = append(m.createChunkReqs, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.chunkCount++
	return &generativelanguagepb.Chunk{Name: req.GetParent() + "/chunks/c"}, nil
}

func (m *mockRetrieverAPI) ListCorpora(_ context.Context, _ *generativelanguagepb.ListCorporaRequest) CorpusIterator {
	return &mockIterator{items: m.corpora, err: m.listErr}
}

func (m *mockRetrieverAPI) DeleteCorpus(_ context.Context, req *generativelanguagepb.DeleteCorpusRequest, _ ...gax.CallOption) error {
	m.deleteReqs = append(m.deleteReqs, req)
	return m.deleteErr
}

// mockIterator yields items, then err if set, otherwise iterator.Done.
type mockIterator struct {
	items []*generativelanguagepb.Corpus
	err   error
	pos   int
}

func (it *mockIterator) Next() (*generativelanguagepb.Corpus, error) {
	if it.pos < len(it.items) {
		c := it.items[it.pos]
		it.pos++
		return c, nil
	}
	if it.err != nil {
		return nil, it.err
	}
	return nil, iterator.Done
}

type mockGenerativeAPI struct {
	reqs []*generativelanguagepb.GenerateAnswerRequest
	resp *generativelanguagepb.GenerateAnswerResponse
	err  error
}

func (m *mockGenerativeAPI) GenerateAnswer(_ context.Context, req *generativelanguagepb.GenerateAnswerRequest, _ ...gax.CallOption) (*generativelanguagepb.GenerateAnswerResponse, error) {
	m.reqs = append(m.reqs, req)
	return m.resp, m.err
}

func answerResponse(text string, prob float32) *generativelanguagepb.GenerateAnswerResponse {
	return &generativelanguagepb.GenerateAnswerResponse{
		Answer: &generativelanguagepb.Candidate{
			Content: &generativelanguagepb.Content{
				Parts: []*generativelanguagepb.Part{
					{Data: &generativelanguagepb.Part_Text{Text: text}},
				},
			},
		},
		AnswerableProbability: &prob,
	}
}
