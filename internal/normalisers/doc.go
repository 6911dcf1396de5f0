// Package normalisers provides implementations of the Normaliser interface.
// A normaliser extracts plain text from the raw bytes of one MIME type.
//
// Only PDF is supported; see the pdf subpackage.
package normalisers
