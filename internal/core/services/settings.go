package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDataSource         = "data.source"
	KeyDataDir            = "data.dir"
	KeyDataManifest       = "data.manifest"
	KeyGitHubRepo         = "github.repo"
	KeyGitHubRef          = "github.ref"
	KeyGitHubPath         = "github.path"
	KeyGitHubToken        = "github.token"
	KeyLoadConcurrency    = "load.concurrency"
	KeyQueryLimit         = "query.limit"
	KeyQueryMatchCategory = "query.match_category"
	KeyWatchInterval      = "watch.interval_ms"
	KeyServeAddr          = "serve.addr"

	categoriesPrefix = "categories"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

var settingKinds = map[string]valueKind{
	KeyDataSource:         kindString,
	KeyDataDir:            kindString,
	KeyDataManifest:       kindString,
	KeyGitHubRepo:         kindString,
	KeyGitHubRef:          kindString,
	KeyGitHubPath:         kindString,
	KeyGitHubToken:        kindString,
	KeyLoadConcurrency:    kindInt,
	KeyQueryLimit:         kindInt,
	KeyQueryMatchCategory: kindBool,
	KeyWatchInterval:      kindInt,
	KeyServeAddr:          kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Data: domain.DataSettings{
			Source:   s.getSourceKind(defaults.Data.Source),
			Dir:      s.getString(KeyDataDir, defaults.Data.Dir),
			Manifest: s.getString(KeyDataManifest, defaults.Data.Manifest),
		},
		GitHub: domain.GitHubSettings{
			Repo:  s.getString(KeyGitHubRepo, ""),
			Ref:   s.getString(KeyGitHubRef, ""),
			Path:  s.getString(KeyGitHubPath, ""),
			Token: s.getString(KeyGitHubToken, ""),
		},
		Load: domain.LoadSettings{
			Concurrency: s.getInt(KeyLoadConcurrency, defaults.Load.Concurrency),
		},
		Query: domain.QuerySettings{
			Limit:         s.getInt(KeyQueryLimit, defaults.Query.Limit),
			MatchCategory: s.getBool(KeyQueryMatchCategory, defaults.Query.MatchCategory),
		},
		Watch: domain.WatchSettings{
			IntervalMs: s.getInt(KeyWatchInterval, defaults.Watch.IntervalMs),
		},
		Serve: domain.ServeSettings{
			Addr: s.getString(KeyServeAddr, defaults.Serve.Addr),
		},
	}

	categories, err := s.getCategories()
	if err != nil {
		return nil, err
	}
	settings.Categories = categories

	return settings, nil
}

// Set validates and persists one setting by dotted key.
// Category overrides use "categories.<key>" with a "mainType/SubType" value.
func (s *SettingsService) Set(key, value string) error {
	if cat, ok := strings.CutPrefix(key, categoriesPrefix+"."); ok {
		if strings.Contains(cat, ".") {
			return fmt.Errorf("%w: category key %q contains a dot", domain.ErrInvalidInput, cat)
		}
		if _, err := domain.ParseClassification(cat, value); err != nil {
			return err
		}
		return s.store(key, value)
	}

	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		return s.checkAndStore(key, n)
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.checkAndStore(key, b)
	default:
		return s.checkAndStore(key, value)
	}
}

// checkAndStore validates the settings as they would be after the change.
func (s *SettingsService) checkAndStore(key string, value any) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings, key, value)
	if err := s.Validate(settings); err != nil {
		return err
	}
	return s.store(key, value)
}

func apply(st *domain.AppSettings, key string, value any) {
	str, _ := value.(string)
	n, _ := value.(int)
	b, _ := value.(bool)
	switch key {
	case KeyDataSource:
		st.Data.Source = domain.SourceKind(str)
	case KeyDataDir:
		st.Data.Dir = str
	case KeyDataManifest:
		st.Data.Manifest = str
	case KeyGitHubRepo:
		st.GitHub.Repo = str
	case KeyGitHubRef:
		st.GitHub.Ref = str
	case KeyGitHubPath:
		st.GitHub.Path = str
	case KeyGitHubToken:
		st.GitHub.Token = str
	case KeyLoadConcurrency:
		st.Load.Concurrency = n
	case KeyQueryLimit:
		st.Query.Limit = n
	case KeyQueryMatchCategory:
		st.Query.MatchCategory = b
	case KeyWatchInterval:
		st.Watch.IntervalMs = n
	case KeyServeAddr:
		st.Serve.Addr = str
	}
}

// Unset removes a stored setting so its default applies again. The
// removal is undone when the remaining settings no longer validate.
func (s *SettingsService) Unset(key string) error {
	if _, isCategory := strings.CutPrefix(key, categoriesPrefix+"."); !isCategory {
		if _, ok := settingKinds[key]; !ok {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
	}
	prev, had := s.configStore.Get(key)
	if !had {
		return nil
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	settings, err := s.Get()
	if err == nil {
		err = s.Validate(settings)
	}
	if err != nil {
		if restoreErr := s.configStore.Set(key, prev); restoreErr != nil {
			return fmt.Errorf("%w (restore failed: %w)", err, restoreErr)
		}
		return err
	}
	return nil
}

func (s *SettingsService) store(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Validate checks settings for consistency.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if settings.Data.Source == domain.SourceGitHub && settings.GitHub.Repo == "" {
		return fmt.Errorf("%w: github source requires %s", domain.ErrInvalidInput, KeyGitHubRepo)
	}
	return nil
}

// Taxonomy returns the default taxonomy extended with configured categories.
func (s *SettingsService) Taxonomy(settings *domain.AppSettings) *domain.Taxonomy {
	t := domain.DefaultTaxonomy()
	if len(settings.Categories) == 0 {
		return t
	}
	return t.WithOverrides(settings.Categories)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults. Stored values keep the
// type the backing store decoded them as, so numbers may be int, int64 or
// float64.

func (s *SettingsService) getString(key, defaultVal string) string {
	val, _ := s.configStore.Get(key)
	if str, ok := val.(string); ok && str != "" {
		return str
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, _ := s.configStore.Get(key)
	var n int
	switch v := val.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	}
	if n == 0 {
		return defaultVal
	}
	return n
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, _ := s.configStore.Get(key)
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getSourceKind(defaultVal domain.SourceKind) domain.SourceKind {
	kind := domain.SourceKind(s.getString(KeyDataSource, ""))
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}

func (s *SettingsService) getCategories() (map[string]domain.Classification, error) {
	keys := s.configStore.Keys(categoriesPrefix)
	if len(keys) == 0 {
		return nil, nil
	}
	out := make(map[string]domain.Classification, len(keys))
	for _, k := range keys {
		val := s.getString(categoriesPrefix+"."+k, "")
		if val == "" {
			continue
		}
		c, err := domain.ParseClassification(k, val)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}
