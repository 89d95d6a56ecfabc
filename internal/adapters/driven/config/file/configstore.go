package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/grimoire/internal/adapters/driven/config"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
)

// FileName is the settings file inside the config directory.
const FileName = "config.toml"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a TOML file. The file is decoded into a
// tree once and rewritten after every change.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree config.Tree
}

// NewConfigStore opens the settings file in configDir, creating the
// directory when needed. An empty configDir means ~/.grimoire.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".grimoire")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{path: filepath.Join(configDir, FileName)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value at key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Lookup(key)
}

// Keys returns the sorted value names of a TOML table.
func (s *ConfigStore) Keys(table string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Names(table)
}

// Set stores value at key and rewrites the file. The change is rolled
// back when the file cannot be written.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.tree.Lookup(key)
	if err := s.tree.Put(key, value); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		if had {
			_ = s.tree.Put(key, prev)
		} else {
			s.tree.Delete(key)
		}
		return err
	}
	return nil
}

// Unset removes key and rewrites the file.
func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.tree.Lookup(key)
	if !had {
		return nil
	}
	s.tree.Delete(key)
	if err := s.save(); err != nil {
		_ = s.tree.Put(key, prev)
		return err
	}
	return nil
}

// save replaces the file through a temporary sibling so a failed write
// never truncates existing settings. Caller holds the lock.
func (s *ConfigStore) save() error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(map[string]any(s.tree)); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Load re-reads the settings file. A missing file is an empty tree.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.tree = config.Tree{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	tree := config.Tree{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.tree = tree
	return nil
}

// Path returns the settings file path.
func (s *ConfigStore) Path() string {
	return s.path
}
