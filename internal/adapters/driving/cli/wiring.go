package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/grimoire/internal/adapters/driven/config/file"
	"github.com/custodia-labs/grimoire/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grimoire/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/grimoire/internal/connectors/filesystem"
	"github.com/custodia-labs/grimoire/internal/connectors/github"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/core/services"
	"github.com/custodia-labs/grimoire/internal/logger"
	"github.com/custodia-labs/grimoire/internal/normalisers/item"
)

// EnvGitHubToken overrides github.token when set.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvGitHubToken = "GRIMOIRE_GITHUB_TOKEN"

// BuildServices is the default builder: it reads configuration, applies
// flag and environment overrides and wires the catalog to its source.
func BuildServices(opts Options) (*Services, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Ignoring .env: %v", err)
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	st, err := settings.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	applyOverrides(st, opts)
	if err := settings.Validate(st); err != nil {
		return nil, err
	}

	logger.Section("Configuration")
	logger.Debug("Config file: %s", configStore.Path())
	logger.Debug("Source: %s", st.Data.Source)

	src, err := newSource(st)
	if err != nil {
		return nil, err
	}

	taxonomy := settings.Taxonomy(st)
	store := memory.NewRecordStore()
	loader := services.NewLoader(src, item.New(), store, taxonomy, st.Load.Concurrency)
	catalog := services.NewCatalogService(loader, store, taxonomy, services.CatalogOptions{
		Limit:         st.Query.Limit,
		MatchCategory: st.Query.MatchCategory,
	})

	svc := &Services{
		Catalog:  catalog,
		Settings: settings,
		Export: func(ctx context.Context, path string) (int, error) {
			w, err := sqlite.NewStore(path)
			if err != nil {
				return 0, err
			}
			defer w.Close()
			return catalog.Export(ctx, w)
		},
	}

	if w, ok := src.(driven.Watcher); ok {
		interval := time.Duration(st.Watch.IntervalMs) * time.Millisecond
		svc.Watch = func(ctx context.Context, onReload func(*domain.LoadReport, error)) error {
			return catalog.Watch(ctx, w, interval, onReload)
		}
	}
	return svc, nil
}

// applyOverrides layers flags and environment over stored settings.
func applyOverrides(st *domain.AppSettings, opts Options) {
	if opts.DataDir != "" {
		st.Data.Source = domain.SourceFilesystem
		st.Data.Dir = opts.DataDir
	}
	if opts.GitHub != "" {
		repo, ref, _ := strings.Cut(opts.GitHub, "@")
		st.Data.Source = domain.SourceGitHub
		st.GitHub.Repo = repo
		st.GitHub.Ref = ref
	}
	if opts.Manifest != "" {
		st.Data.Manifest = opts.Manifest
	}
	if token := os.Getenv(EnvGitHubToken); token != "" {
		st.GitHub.Token = token
	}
}

func newSource(st *domain.AppSettings) (driven.DocumentSource, error) {
	switch st.Data.Source {
	case domain.SourceFilesystem:
		interval := time.Duration(st.Watch.IntervalMs) * time.Millisecond
		return filesystem.New(st.Data.Dir, st.Data.Manifest, filesystem.WithInterval(interval)), nil
	case domain.SourceGitHub:
		cfg, err := github.ConfigFromSettings(st.GitHub, st.Data.Manifest)
		if err != nil {
			return nil, err
		}
		return github.New(cfg, github.NewClient(context.Background(), st.GitHub.Token)), nil
	default:
		return nil, fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, st.Data.Source)
	}
}
