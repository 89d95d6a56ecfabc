package driven

import (
	"context"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// RecordStore holds the published catalog and its facet index.
// The collection is replaced wholesale; there is no per-record mutation.
type RecordStore interface {
	// Replace publishes a complete collection atomically.
	// Readers observe either the previous or the new collection, never a mix.
	Replace(ctx context.Context, records []domain.Record) error

	// Loaded reports whether a collection has been published.
	Loaded() bool

	// All returns the collection in store order.
	All(ctx context.Context) ([]domain.Record, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Select returns the records in scope carrying trait, in store order.
	// An empty trait selects every record in scope.
	Select(ctx context.Context, scope domain.Scope, trait string) ([]domain.Record, error)

	// TraitsFor returns the sorted distinct traits of the records in scope.
	TraitsFor(ctx context.Context, scope domain.Scope) ([]string, error)

	// SubTypesFor returns "All" followed by the sorted distinct sub types of mainType.
	SubTypesFor(ctx context.Context, mainType domain.MainType) ([]string, error)
}
