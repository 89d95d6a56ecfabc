package driven

import (
	"context"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// DocumentSource reads catalog documents from a location.
// Each source type (filesystem, github) implements this interface.
type DocumentSource interface {
	// Type returns the source type identifier.
	Type() domain.SourceKind

	// Manifest returns the ordered document identifiers.
	// Failures wrap domain.ErrManifestUnavailable.
	Manifest(ctx context.Context) ([]string, error)

	// Fetch returns the raw bytes of one document.
	// Must be safe for concurrent use.
	Fetch(ctx context.Context, id string) (*domain.RawDocument, error)
}

// Watcher is implemented by sources that can signal changes.
type Watcher interface {
	// Watch returns a channel that receives a value whenever the source
	// may have changed. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
