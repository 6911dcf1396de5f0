package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
)

// Ensure Retriever implements the interfaces.
var (
	_ driven.RetrieverService = (*Retriever)(nil)
	_ driven.AnswerGenerator  = (*Retriever)(nil)
)

// Operation names recorded by Retriever.
const (
	OpCreateCorpus   = "create corpus"
	OpCreateDocument = "create document"
	OpCreateChunk    = "create chunk"
	OpListCorpora    = "list corpora"
	OpDeleteCorpus   = "delete corpus"
	OpGenerateAnswer = "generate answer"
)

// ErrCorpusNotEmpty is returned when deleting a non-empty corpus without force.
var ErrCorpusNotEmpty = errors.New("corpus is not empty")

// Call is one recorded remote operation.
type Call struct {
	Op     string
	Target string
	Force  bool
}

type corpusEntry struct {
	corpus    domain.Corpus
	documents []domain.DocumentHandle
}

type documentEntry struct {
	corpus domain.CorpusHandle
	name   string
	chunks []string
}

type failure struct {
	after int
	err   error
}

// Retriever is an in-memory stand-in for the remote semantic retriever.
type Retriever struct {
	mu        sync.Mutex
	corpora   []*corpusEntry
	documents map[domain.DocumentHandle]*documentEntry
	calls     []Call
	counts    map[string]int
	failures  map[string]failure
	seq       int
	now       func() time.Time
}

// NewRetriever creates an empty in-memory retriever.
func NewRetriever() *Retriever {
	return &Retriever{
		documents: make(map[domain.DocumentHandle]*documentEntry),
		counts:    make(map[string]int),
		failures:  make(map[string]failure),
		now:       time.Now,
	}
}

// FailOn makes every call to op fail with err once after successful calls
// have been made. Use after=0 to fail immediately.
func (r *Retriever) FailOn(op string, after int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = failure{after: after, err: err}
}

// Calls returns a copy of the recorded calls in order.
func (r *Retriever) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns how many times op was invoked, including failures.
func (r *Retriever) CallCount(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[op]
}

// Chunks returns the chunk texts stored in a document.
func (r *Retriever) Chunks(document domain.DocumentHandle) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[document]
	if !ok {
		return nil
	}
	out := make([]string, len(doc.chunks))
	copy(out, doc.chunks)
	return out
}

// record logs a call and returns the injected failure, if due.
// Callers must hold r.mu.
func (r *Retriever) record(ctx context.Context, call Call) error {
	r.calls = append(r.calls, call)
	n := r.counts[call.Op]
	r.counts[call.Op] = n + 1

	if err := ctx.Err(); err != nil {
		return domain.NewServiceError(call.Op, err)
	}
	if f, ok := r.failures[call.Op]; ok && n >= f.after {
		return domain.NewServiceError(call.Op, f.err)
	}
	return nil
}

func (r *Retriever) nextID() int {
	r.seq++
	return r.seq
}

func (r *Retriever) findCorpus(name domain.CorpusHandle) (int, *corpusEntry) {
	for i, c := range r.corpora {
		if c.corpus.Name == name {
			return i, c
		}
	}
	return -1, nil
}

// CreateCorpus creates an empty corpus and returns its handle.
func (r *Retriever) CreateCorpus(ctx context.Context, displayName string) (domain.CorpusHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpCreateCorpus, Target: displayName}); err != nil {
		return "", err
	}

	now := r.now()
	handle := domain.CorpusHandle(fmt.Sprintf("corpora/corpus-%d", r.nextID()))
	r.corpora = append(r.corpora, &corpusEntry{corpus: domain.Corpus{
		Name:        handle,
		DisplayName: displayName,
		CreateTime:  now,
		UpdateTime:  now,
	}})
	return handle, nil
}

// CreateDocument creates an empty document within a corpus.
func (r *Retriever) CreateDocument(ctx context.Context, corpus domain.CorpusHandle, displayName string) (domain.DocumentHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpCreateDocument, Target: corpus.String()}); err != nil {
		return "", err
	}

	_, entry := r.findCorpus(corpus)
	if entry == nil {
		return "", domain.NewServiceError(OpCreateDocument, fmt.Errorf("%w: %s", domain.ErrNotFound, corpus))
	}

	handle := domain.DocumentHandle(fmt.Sprintf("%s/documents/document-%d", corpus, r.nextID()))
	r.documents[handle] = &documentEntry{corpus: corpus, name: displayName}
	entry.documents = append(entry.documents, handle)
	entry.corpus.UpdateTime = r.now()
	return handle, nil
}

// CreateChunk appends one chunk to a document.
func (r *Retriever) CreateChunk(ctx context.Context, document domain.DocumentHandle, text string) (domain.ChunkHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpCreateChunk, Target: document.String()}); err != nil {
		return "", err
	}

	doc, ok := r.documents[document]
	if !ok {
		return "", domain.NewServiceError(OpCreateChunk, fmt.Errorf("%w: %s", domain.ErrNotFound, document))
	}

	doc.chunks = append(doc.chunks, text)
	return domain.ChunkHandle(fmt.Sprintf("%s/chunks/chunk-%d", document, r.nextID())), nil
}

// ListCorpora returns all corpora in creation order.
func (r *Retriever) ListCorpora(ctx context.Context) ([]domain.Corpus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpListCorpora}); err != nil {
		return nil, err
	}

	out := make([]domain.Corpus, 0, len(r.corpora))
	for _, c := range r.corpora {
		out = append(out, c.corpus)
	}
	return out, nil
}

// DeleteCorpus removes a corpus. Without force, a corpus holding documents
// is rejected.
func (r *Retriever) DeleteCorpus(ctx context.Context, corpus domain.CorpusHandle, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpDeleteCorpus, Target: corpus.String(), Force: force}); err != nil {
		return err
	}

	i, entry := r.findCorpus(corpus)
	if entry == nil {
		return domain.NewServiceError(OpDeleteCorpus, fmt.Errorf("%w: %s", domain.ErrNotFound, corpus))
	}
	if len(entry.documents) > 0 && !force {
		return domain.NewServiceError(OpDeleteCorpus, fmt.Errorf("%w: %s", ErrCorpusNotEmpty, corpus))
	}

	for _, d := range entry.documents {
		delete(r.documents, d)
	}
	r.corpora = append(r.corpora[:i], r.corpora[i+1:]...)
	return nil
}

// GenerateAnswer returns the stored chunk sharing the most words with the
// query. AnswerableProbability is the fraction of query words matched.
func (r *Retriever) GenerateAnswer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.record(ctx, Call{Op: OpGenerateAnswer, Target: req.Corpus.String()}); err != nil {
		return nil, err
	}

	opts := domain.AnswerOptions{Style: req.Style, Model: req.Model}.WithDefaults()
	if !opts.Style.IsValid() {
		return nil, fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, opts.Style)
	}

	_, entry := r.findCorpus(req.Corpus)
	if entry == nil {
		return nil, domain.NewServiceError(OpGenerateAnswer, fmt.Errorf("%w: %s", domain.ErrNotFound, req.Corpus))
	}

	terms := queryTerms(req.Query)
	best, bestScore := "", 0
	for _, d := range entry.documents {
		for _, chunk := range r.documents[d].chunks {
			if score := matchCount(chunk, terms); score > bestScore {
				best, bestScore = chunk, score
			}
		}
	}
	if bestScore == 0 {
		return nil, domain.NewServiceError(OpGenerateAnswer, domain.ErrNoAnswer)
	}

	return &domain.Answer{
		Text:                  best,
		Query:                 req.Query,
		Style:                 opts.Style,
		Model:                 opts.Model,
		Corpus:                req.Corpus,
		AnswerableProbability: float32(bestScore) / float32(len(terms)),
	}, nil
}

// queryTerms returns the distinct lowercase words of q longer than two bytes.
func queryTerms(q string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, w := range strings.FieldsFunc(strings.ToLower(q), isSeparator) {
		if len(w) > 2 && !seen[w] {
			seen[w] = true
			terms = append(terms, w)
		}
	}
	return terms
}

func matchCount(chunk string, terms []string) int {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(chunk), isSeparator) {
		words[w] = true
	}
	n := 0
	for _, t := range terms {
		if words[t] {
			n++
		}
	}
	return n
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
}
