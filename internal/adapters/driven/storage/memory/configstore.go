package memory

import (
	"sync"

	"github.com/custodia-labs/grimoire/internal/adapters/driven/config"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory only.
// Used by tests and by hosts that must not touch the user's config file.
type ConfigStore struct {
	mu   sync.RWMutex
	tree config.Tree
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{tree: config.Tree{}}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Lookup(key)
}

func (s *ConfigStore) Keys(table string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Names(table)
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Put(key, value)
}

func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Delete(key)
	return nil
}

// Load is a no-op; there is no backing storage.
func (s *ConfigStore) Load() error { return nil }

func (s *ConfigStore) Path() string { return ":memory:" }
