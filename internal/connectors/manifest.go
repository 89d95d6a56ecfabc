package connectors

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// ParseManifest decodes a manifest: a JSON array of document identifiers.
// Non-string entries are rejected; blanks and duplicates are left to the loader.
func ParseManifest(data []byte) ([]string, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %w", domain.ErrManifestUnavailable, err)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: manifest is %T, want array", domain.ErrManifestUnavailable, v)
	}
	ids := make([]string, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%w: manifest entry %d is %T, want string", domain.ErrManifestUnavailable, i, e)
		}
		ids = append(ids, s)
	}
	return ids, nil
}
