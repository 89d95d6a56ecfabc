package github

import (
	"context"
	"fmt"
	"path"

	"github.com/custodia-labs/grimoire/internal/connectors"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads the manifest and documents from a repository.
type Source struct {
	cfg    *Config
	client *Client
}

// New creates a GitHub document source.
func New(cfg *Config, client *Client) *Source {
	return &Source{cfg: cfg, client: client}
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceKind {
	return domain.SourceGitHub
}

// Manifest reads and decodes the manifest file.
func (s *Source) Manifest(ctx context.Context) ([]string, error) {
	p := path.Join(s.cfg.Dir, s.cfg.Manifest)
	logger.Debug("GitHub: reading manifest %s from %s", p, s.cfg)
	data, err := s.client.GetFile(ctx, s.cfg.Owner, s.cfg.Repo, p, s.cfg.Ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrManifestUnavailable, p, err)
	}
	return connectors.ParseManifest(data)
}

// Fetch reads one document.
func (s *Source) Fetch(ctx context.Context, id string) (*domain.RawDocument, error) {
	p, err := s.cfg.pathFor(id)
	if err != nil {
		return nil, err
	}
	data, err := s.client.GetFile(ctx, s.cfg.Owner, s.cfg.Repo, p, s.cfg.Ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &domain.RawDocument{ID: id, Content: data}, nil
}
