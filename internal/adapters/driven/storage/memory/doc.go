// Package memory provides in-memory implementations of the driven ports.
//
// ConfigStore backs settings in tests. Retriever stands in for the remote
// semantic retriever: it keeps corpora, documents and chunks in maps,
// records every call, and answers queries from the stored chunks.
// It is used by service tests and by `pdfqa ask --offline`.
package memory
