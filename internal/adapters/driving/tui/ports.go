// Package tui provides an interactive terminal catalog browser.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog answers queries, facets and record lookups.
	Catalog driving.CatalogService

	// QueryLimit caps the rows fetched per query. Zero uses the catalog default.
	QueryLimit int
}

// NewPorts creates a new Ports aggregate with the given catalog.
func NewPorts(catalog driving.CatalogService) *Ports {
	return &Ports{Catalog: catalog}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
