package services

import "github.com/custodia-labs/grimoire/internal/core/domain"

// CategoryResolver classifies structural keys using the taxonomy,
// falling back to the classification inherited from the nearest
// classified ancestor.
type CategoryResolver struct {
	taxonomy *domain.Taxonomy
}

// NewCategoryResolver creates a resolver over a taxonomy.
func NewCategoryResolver(t *domain.Taxonomy) *CategoryResolver {
	return &CategoryResolver{taxonomy: t}
}

// Resolve returns the direct mapping for key, else inherited, else nil.
func (r *CategoryResolver) Resolve(key string, inherited *domain.Classification) *domain.Classification {
	if c, ok := r.taxonomy.Lookup(key); ok {
		return &c
	}
	return inherited
}
