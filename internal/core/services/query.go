package services

import (
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// predicate reports whether a record passes one filter.
type predicate func(r *domain.Record) bool

// QueryEngine applies the facet filter chain to a record collection.
type QueryEngine struct {
	taxonomy *domain.Taxonomy
}

// NewQueryEngine creates a query engine. The taxonomy decides which scopes
// are level-less.
func NewQueryEngine(t *domain.Taxonomy) *QueryEngine {
	return &QueryEngine{taxonomy: t}
}

// Filter returns the records passing every active predicate, in input order.
// No limit is applied.
func (e *QueryEngine) Filter(records []domain.Record, scope domain.Scope, f domain.Filters) []domain.Record {
	preds := e.predicates(scope, f)
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if matchAll(&records[i], preds) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchAll(r *domain.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func (e *QueryEngine) predicates(scope domain.Scope, f domain.Filters) []predicate {
	preds := []predicate{
		func(r *domain.Record) bool { return scope.Contains(*r) },
	}

	if term := strings.ToLower(strings.TrimSpace(f.Text)); term != "" {
		matchCategory := f.MatchCategory
		preds = append(preds, func(r *domain.Record) bool {
			if strings.Contains(strings.ToLower(r.Name), term) {
				return true
			}
			return matchCategory && strings.Contains(strings.ToLower(r.Category), term)
		})
	}

	if f.Levels.IsSet() && !e.taxonomy.IsLevelless(scope) {
		levels := f.Levels
		preds = append(preds, func(r *domain.Record) bool { return levels.Contains(r.Level) })
	}

	if f.Trait != "" {
		trait := f.Trait
		preds = append(preds, func(r *domain.Record) bool { return r.HasTrait(trait) })
	}

	return preds
}
