package driving

import (
	"context"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// CatalogService loads the catalog and answers faceted queries.
type CatalogService interface {
	// Load ingests every manifest document and publishes a new catalog.
	// Only a manifest failure is fatal; per-document problems are reported
	// as diagnostics.
	Load(ctx context.Context) (*domain.LoadReport, error)

	// Query filters, sorts, paginates and projects the catalog.
	Query(ctx context.Context, q domain.Query) (*domain.Result, error)

	// Facets returns the sub type and trait options for a scope.
	Facets(ctx context.Context, scope domain.Scope) (*domain.Facets, error)

	// Record retrieves a single record by ID.
	Record(ctx context.Context, id string) (*domain.Record, error)

	// Taxonomy returns the active mapping table.
	Taxonomy() *domain.Taxonomy

	// LastReport returns the report of the most recent successful load.
	LastReport() *domain.LoadReport
}
