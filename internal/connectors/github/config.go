package github

import (
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// Config locates the catalog inside a repository.
type Config struct {
	Owner string
	Repo  string

	// Ref is a branch, tag or commit. Empty means the default branch.
	Ref string

	// Dir is the repository directory holding the manifest.
	Dir string

	// Manifest is the manifest path relative to Dir.
	Manifest string
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(gs domain.GitHubSettings, manifest string) (*Config, error) {
	owner, repo, err := ParseRepo(gs.Repo)
	if err != nil {
		return nil, err
	}
	return &Config{
		Owner:    owner,
		Repo:     repo,
		Ref:      gs.Ref,
		Dir:      strings.Trim(gs.Path, "/"),
		Manifest: manifest,
	}, nil
}

// ParseRepo splits "owner/name". A trailing ".git" is ignored.
func ParseRepo(s string) (owner, repo string, err error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	return owner, repo, nil
}

// pathFor maps a document identifier to a repository path.
func (c *Config) pathFor(id string) (string, error) {
	for _, seg := range strings.Split(id, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q is outside the catalog directory", domain.ErrInvalidInput, id)
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+id), "/")
	if clean == "" {
		return "", fmt.Errorf("%w: empty document path", domain.ErrInvalidInput)
	}
	return path.Join(c.Dir, clean), nil
}

// String renders "owner/repo@ref".
func (c *Config) String() string {
	s := c.Owner + "/" + c.Repo
	if c.Ref != "" {
		s += "@" + c.Ref
	}
	return s
}
