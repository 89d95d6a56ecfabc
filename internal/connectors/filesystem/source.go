package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/grimoire/internal/connectors"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// Ensure Source implements the interfaces.
var (
	_ driven.DocumentSource = (*Source)(nil)
	_ driven.Watcher        = (*Source)(nil)
)

// DefaultInterval is the minimum gap between change signals.
const DefaultInterval = 500 * time.Millisecond

// Source reads the manifest and documents from a directory.
type Source struct {
	root     string
	manifest string
	interval time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithInterval sets the minimum gap between change signals.
// Zero signals on every event.
func WithInterval(d time.Duration) Option {
	return func(s *Source) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// New creates a filesystem source rooted at dir.
func New(dir, manifest string, opts ...Option) *Source {
	s := &Source{
		root:     filepath.Clean(dir),
		manifest: manifest,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceKind {
	return domain.SourceFilesystem
}

// Root returns the data directory.
func (s *Source) Root() string {
	return s.root
}

// Manifest reads and decodes the manifest file.
func (s *Source) Manifest(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(s.manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrManifestUnavailable, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrManifestUnavailable, err)
	}
	return connectors.ParseManifest(data)
}

// Fetch reads one document.
func (s *Source) Fetch(ctx context.Context, id string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return &domain.RawDocument{ID: id, Content: data}, nil
}

// resolve maps an identifier to a path inside the root.
func (s *Source) resolve(id string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(id, "./"))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q is outside the data directory", domain.ErrInvalidInput, id)
	}
	return filepath.Join(s.root, rel), nil
}

// Watch signals on the returned channel whenever a file below the root
// changes. Signals are at least the configured interval apart and
// pending signals are coalesced. The channel is closed when ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrSourceUnavailable, s.root)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(w, s.root); err != nil {
		_ = w.Close()
		return nil, err
	}

	limit := rate.Inf
	if s.interval > 0 {
		limit = rate.Every(s.interval)
	}
	out := make(chan struct{}, 1)
	go s.run(ctx, w, rate.NewLimiter(limit, 1), out)
	return out, nil
}

func (s *Source) run(ctx context.Context, w *fsnotify.Watcher, limiter *rate.Limiter, out chan<- struct{}) {
	defer close(out)
	defer func() { _ = w.Close() }()

	var (
		pending <-chan time.Time
		timer   *time.Timer
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("Watch: %s %s", ev.Op, ev.Name)
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						logger.Warn("Watch: %v", err)
					}
				}
			}
			if pending == nil {
				timer = time.NewTimer(limiter.Reserve().Delay())
				pending = timer.C
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)

		case <-pending:
			pending = nil
			timer = nil
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

// relevant filters out permission changes, hidden files and editor backups.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

// addTree watches dir and every non-hidden directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
