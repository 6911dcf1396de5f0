package domain

// SessionState is the corpus lifecycle of an interactive session.
type SessionState int

const (
	// SessionEmpty means no remote resources exist for the session.
	SessionEmpty SessionState = iota

	// SessionCorpusCreated means a corpus exists but is not yet populated.
	SessionCorpusCreated

	// SessionPopulated means the loaded text has been ingested.
	SessionPopulated

	// SessionQueried means at least one answer has been generated.
	SessionQueried
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case SessionEmpty:
		return "EMPTY"
	case SessionCorpusCreated:
		return "CORPUS_CREATED"
	case SessionPopulated:
		return "POPULATED"
	case SessionQueried:
		return "QUERIED"
	default:
		return "UNKNOWN"
	}
}

// IsPopulated returns true once the session's corpus holds the loaded text.
func (s SessionState) IsPopulated() bool {
	return s == SessionPopulated || s == SessionQueried
}

// ReuploadPolicy decides what happens to remote handles when a new PDF is
// loaded into a session that already created a corpus.
type ReuploadPolicy string

// Available re-upload policies.
const (
	// ReuploadReuse keeps the existing handles. The new text is not ingested
	// and queries keep running against the previously ingested corpus; the
	// load result reports the handles as stale.
	ReuploadReuse ReuploadPolicy = "reuse"

	// ReuploadNewDocument keeps the corpus and ingests the new text into a
	// fresh document on the next query.
	ReuploadNewDocument ReuploadPolicy = "new_document"

	// ReuploadNewCorpus discards both handles; the next query creates a new
	// corpus. The old corpus stays remote until deleted.
	ReuploadNewCorpus ReuploadPolicy = "new_corpus"
)

// IsValid returns true if the policy is recognised.
func (p ReuploadPolicy) IsValid() bool {
	switch p {
	case ReuploadReuse, ReuploadNewDocument, ReuploadNewCorpus:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p ReuploadPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p ReuploadPolicy) Description() string {
	switch p {
	case ReuploadReuse:
		return "Reuse handles (new PDF is not ingested)"
	case ReuploadNewDocument:
		return "New document in the same corpus"
	case ReuploadNewCorpus:
		return "New corpus per upload"
	default:
		return "Unknown"
	}
}

// AllReuploadPolicies returns all available re-upload policies.
func AllReuploadPolicies() []ReuploadPolicy {
	return []ReuploadPolicy{ReuploadReuse, ReuploadNewDocument, ReuploadNewCorpus}
}

// SessionHandles are the remote resources owned by a session.
type SessionHandles struct {
	Corpus   CorpusHandle
	Document DocumentHandle
}
