package driven

import "github.com/custodia-labs/grimoire/internal/core/domain"

// ItemNormaliser unifies divergent raw item fields before a record is built.
type ItemNormaliser interface {
	// Normalise returns a normalised copy of item. The input is not modified.
	// Normalising an already normalised item yields an equal item.
	Normalise(item domain.RawItem) domain.RawItem
}
