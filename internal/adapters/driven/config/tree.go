// Package config holds the settings document shared by the config stores.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// Tree is a decoded settings document. Nested tables are map[string]any,
// which is also what the TOML decoder produces.
type Tree map[string]any

func split(key string) ([]string, error) {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: malformed config key %q", domain.ErrInvalidInput, key)
		}
	}
	return parts, nil
}

// table walks to the table at parts, or returns nil.
func (t Tree) table(parts []string) map[string]any {
	node := map[string]any(t)
	for _, p := range parts {
		next, ok := node[p].(map[string]any)
		if !ok {
			return nil
		}
		node = next
	}
	return node
}

// Lookup returns the value at key. Tables are not values.
func (t Tree) Lookup(key string) (any, bool) {
	parts, err := split(key)
	if err != nil {
		return nil, false
	}
	node := t.table(parts[:len(parts)-1])
	if node == nil {
		return nil, false
	}
	v, ok := node[parts[len(parts)-1]]
	if _, isTable := v.(map[string]any); !ok || isTable {
		return nil, false
	}
	return v, true
}

// Names returns the sorted value names directly inside table.
// An empty table name lists the top level.
func (t Tree) Names(table string) []string {
	node := map[string]any(t)
	if table != "" {
		parts, err := split(table)
		if err != nil {
			return nil
		}
		node = t.table(parts)
	}
	var names []string
	for k, v := range node {
		if _, isTable := v.(map[string]any); !isTable {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Put stores v at key, creating intermediate tables. A key cannot pass
// through an existing value or replace a table.
func (t Tree) Put(key string, v any) error {
	parts, err := split(key)
	if err != nil {
		return err
	}
	node := map[string]any(t)
	for i, p := range parts[:len(parts)-1] {
		switch next := node[p].(type) {
		case map[string]any:
			node = next
		case nil:
			child := make(map[string]any)
			node[p] = child
			node = child
		default:
			return fmt.Errorf("%w: %s is a value, not a table",
				domain.ErrInvalidInput, strings.Join(parts[:i+1], "."))
		}
	}
	leaf := parts[len(parts)-1]
	if _, isTable := node[leaf].(map[string]any); isTable {
		return fmt.Errorf("%w: %s is a table", domain.ErrInvalidInput, key)
	}
	node[leaf] = v
	return nil
}

// Delete removes the value at key and prunes tables left empty.
func (t Tree) Delete(key string) {
	parts, err := split(key)
	if err != nil {
		return
	}
	prune(t, parts)
}

func prune(node map[string]any, parts []string) {
	if len(parts) == 1 {
		if _, isTable := node[parts[0]].(map[string]any); !isTable {
			delete(node, parts[0])
		}
		return
	}
	child, ok := node[parts[0]].(map[string]any)
	if !ok {
		return
	}
	prune(child, parts[1:])
	if len(child) == 0 {
		delete(node, parts[0])
	}
}
