// Package tui provides the interactive terminal user interface for pdfqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session loads PDFs and answers questions.
	Session driving.QuerySession

	// StartDir is where the file picker opens. Empty means the working
	// directory.
	StartDir string
}

// NewPorts creates a new Ports aggregate.
func NewPorts(session driving.QuerySession) *Ports {
	return &Ports{Session: session}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
