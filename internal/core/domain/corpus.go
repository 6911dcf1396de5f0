package domain

import "time"

// CorpusHandle is the remote resource name of a corpus, e.g. "corpora/abc".
type CorpusHandle string

// DocumentHandle is the remote resource name of a document within a corpus,
// e.g. "corpora/abc/documents/xyz".
type DocumentHandle string

// ChunkHandle is the remote resource name of an indexed chunk.
type ChunkHandle string

// String returns the resource name.
func (h CorpusHandle) String() string { return string(h) }

// String returns the resource name.
func (h DocumentHandle) String() string { return string(h) }

// String returns the resource name.
func (h ChunkHandle) String() string { return string(h) }

// Default display names used when a session creates remote resources.
const (
	DefaultCorpusDisplayName   = "Local PDF Corpus"
	DefaultDocumentDisplayName = "Uploaded PDF"
)

// Corpus is a remote document container as returned by a listing.
type Corpus struct {
	// Name is the corpus resource name.
	Name CorpusHandle `json:"name"`

	// DisplayName is the human-readable name given at creation.
	DisplayName string `json:"display_name"`

	// CreateTime is when the corpus was created.
	CreateTime time.Time `json:"create_time"`

	// UpdateTime is when the corpus was last modified.
	UpdateTime time.Time `json:"update_time"`
}

// DeletionEventKind identifies a step of a bulk corpus deletion.
type DeletionEventKind int

const (
	// DeletionStarted is emitted before a corpus delete call is issued.
	DeletionStarted DeletionEventKind = iota

	// DeletionCompleted is emitted after a corpus delete call succeeded.
	DeletionCompleted
)

// DeletionEvent reports progress of a bulk corpus deletion.
type DeletionEvent struct {
	Kind   DeletionEventKind
	Corpus Corpus
}

// DeletionReport summarises a bulk corpus deletion.
type DeletionReport struct {
	// Listed is the number of corpora found.
	Listed int

	// Deleted holds the corpora deleted, in deletion order.
	Deleted []CorpusHandle
}
