package services

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// Extractor harvests classified item candidates from document trees.
// Input trees are never modified; every candidate holds its own copy.
type Extractor struct {
	resolver *CategoryResolver
}

// NewExtractor creates an extractor.
func NewExtractor(resolver *CategoryResolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// Extract walks doc depth first. Object keys are visited in sorted order
// so diagnostics are reproducible across runs.
func (e *Extractor) Extract(doc domain.Document) ([]domain.Candidate, []domain.Diagnostic) {
	x := &extraction{doc: doc.ID}
	e.walk(x, doc.Root, "$", nil)
	return x.candidates, x.diagnostics
}

type extraction struct {
	doc         string
	candidates  []domain.Candidate
	diagnostics []domain.Diagnostic
}

func (x *extraction) diag(kind domain.DiagnosticKind, path, key, msg string) {
	x.diagnostics = append(x.diagnostics, domain.Diagnostic{
		Kind:     kind,
		Document: x.doc,
		Path:     path,
		Key:      key,
		Message:  msg,
	})
}

func (e *Extractor) walk(x *extraction, node map[string]any, path string, inherited *domain.Classification) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		childPath := joinPath(path, key)
		switch v := node[key].(type) {
		case []any:
			ctx := e.resolver.Resolve(key, inherited)
			if ctx == nil {
				x.diag(domain.DiagUnmappedKey, childPath, key,
					fmt.Sprintf("no category mapping, %d item(s) excluded", len(v)))
				continue
			}
			e.harvest(x, v, childPath, key, *ctx)
		case map[string]any:
			e.walk(x, v, childPath, e.resolver.Resolve(key, inherited))
		}
	}
}

func (e *Extractor) harvest(x *extraction, items []any, path, key string, class domain.Classification) {
	for i, el := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := el.(map[string]any)
		if !ok {
			x.diag(domain.DiagInvalidItem, itemPath, key, fmt.Sprintf("expected object, got %T", el))
			continue
		}
		if name, _ := obj[domain.FieldName].(string); name == "" {
			x.diag(domain.DiagMissingName, itemPath, key, "item has no name")
			continue
		}
		x.candidates = append(x.candidates, domain.Candidate{
			Item:           domain.RawItem(copyObject(obj)),
			Classification: class,
			Origin:         domain.Origin{Document: x.doc, Path: itemPath},
		})
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// joinPath appends key to a JSONPath, using bracket notation when needed.
func joinPath(path, key string) string {
	if identifier.MatchString(key) {
		return path + "." + key
	}
	return fmt.Sprintf("%s[%q]", path, key)
}

// copyObject deep-copies a JSON object so candidates share no
// containers with the input tree.
func copyObject(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyObject(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
