package driven

import (
	"context"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// SnapshotWriter exports a published catalog.
type SnapshotWriter interface {
	// WriteSnapshot replaces the exported catalog with records.
	WriteSnapshot(ctx context.Context, report domain.LoadReport, records []domain.Record) error

	// Close releases resources.
	Close() error
}
