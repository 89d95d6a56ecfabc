package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogOptions tunes query defaults.
type CatalogOptions struct {
	// Limit is used when a query sets none. Zero means domain.DefaultLimit.
	Limit int

	// MatchCategory extends every text filter to the category label.
	MatchCategory bool
}

// CatalogService loads the catalog and answers faceted queries.
type CatalogService struct {
	loader    *Loader
	store     driven.RecordStore
	taxonomy  *domain.Taxonomy
	engine    *QueryEngine
	projector *Projector
	opts      CatalogOptions

	loadMu sync.Mutex

	mu     sync.RWMutex
	report *domain.LoadReport
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	loader *Loader,
	store driven.RecordStore,
	taxonomy *domain.Taxonomy,
	opts CatalogOptions,
) *CatalogService {
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultLimit
	}
	return &CatalogService{
		loader:    loader,
		store:     store,
		taxonomy:  taxonomy,
		engine:    NewQueryEngine(taxonomy),
		projector: NewProjector(),
		opts:      opts,
	}
}

// Load runs a load cycle and remembers its report. Concurrent calls run
// one at a time so the remembered report is always from the last publish.
func (s *CatalogService) Load(ctx context.Context) (*domain.LoadReport, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	report, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.report = report
	s.mu.Unlock()
	return report, nil
}

// LastReport returns the most recent successful load report, or nil.
func (s *CatalogService) LastReport() *domain.LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Taxonomy returns the active mapping table.
func (s *CatalogService) Taxonomy() *domain.Taxonomy {
	return s.taxonomy
}

// Query filters, sorts, paginates and projects the catalog.
func (s *CatalogService) Query(ctx context.Context, q domain.Query) (*domain.Result, error) {
	if !s.store.Loaded() {
		return nil, domain.ErrNotLoaded
	}
	if err := s.validate(q); err != nil {
		return nil, err
	}

	logger.Section("Catalog Query")
	logger.Debug("Scope: %s, text: %q, trait: %q, sort: %s %s",
		q.Scope, q.Filters.Text, q.Filters.Trait, q.Sort.Key, q.Sort.Direction)

	if q.Scope.SubType == "" && q.Scope.MainType != "" {
		q.Scope.SubType = domain.SubTypeAll
	}
	filters := q.Filters
	filters.MatchCategory = filters.MatchCategory || s.opts.MatchCategory

	candidates, err := s.store.Select(ctx, q.Scope, filters.Trait)
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	matched := s.engine.Filter(candidates, q.Scope, filters)

	spec := q.Sort
	if spec.Key == "" {
		spec = domain.DefaultSort
	}
	sorted := SortRecords(matched, spec)

	limit := q.Limit
	if limit <= 0 {
		limit = s.opts.Limit
	}
	page := paginate(sorted, q.Offset, limit)

	cols := domain.SchemaFor(q.Scope)
	rows := make([][]string, len(page))
	for i, r := range page {
		rows[i] = s.projector.Project(r, cols)
	}

	logger.Debug("Matched %d of %d candidate(s), returning %d", len(matched), len(candidates), len(page))
	return &domain.Result{
		Scope:   q.Scope,
		Columns: cols,
		Records: page,
		Rows:    rows,
		Total:   len(matched),
	}, nil
}

func (s *CatalogService) validate(q domain.Query) error {
	if q.Scope.MainType != "" && !s.taxonomy.IsKnown(q.Scope.MainType) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMainType, q.Scope.MainType)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", domain.ErrInvalidInput, q.Limit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", domain.ErrInvalidInput, q.Offset)
	}
	return nil
}

func paginate(records []domain.Record, offset, limit int) []domain.Record {
	if offset >= len(records) {
		return []domain.Record{}
	}
	end := len(records)
	if limit < end-offset {
		end = offset + limit
	}
	return records[offset:end]
}

// Facets returns the sub type and trait options for a scope.
func (s *CatalogService) Facets(ctx context.Context, scope domain.Scope) (*domain.Facets, error) {
	if !s.store.Loaded() {
		return nil, domain.ErrNotLoaded
	}
	if scope.MainType != "" && !s.taxonomy.IsKnown(scope.MainType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMainType, scope.MainType)
	}
	if scope.SubType == "" {
		scope.SubType = domain.SubTypeAll
	}

	var subs []string
	if scope.MainType != "" {
		var err error
		subs, err = s.store.SubTypesFor(ctx, scope.MainType)
		if err != nil {
			return nil, fmt.Errorf("sub types: %w", err)
		}
	}
	traits, err := s.store.TraitsFor(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("traits: %w", err)
	}
	return &domain.Facets{Scope: scope, SubTypes: subs, Traits: traits}, nil
}

// Record retrieves a single record by ID.
func (s *CatalogService) Record(ctx context.Context, id string) (*domain.Record, error) {
	if !s.store.Loaded() {
		return nil, domain.ErrNotLoaded
	}
	return s.store.Get(ctx, id)
}

// Export writes the published catalog through a snapshot writer.
func (s *CatalogService) Export(ctx context.Context, w driven.SnapshotWriter) (int, error) {
	if !s.store.Loaded() {
		return 0, domain.ErrNotLoaded
	}
	records, err := s.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}
	var report domain.LoadReport
	if r := s.LastReport(); r != nil {
		report = *r
	}
	if err := w.WriteSnapshot(ctx, report, records); err != nil {
		return 0, fmt.Errorf("write snapshot: %w", err)
	}
	return len(records), nil
}

// Watch reloads the catalog whenever the watcher signals a change, until
// ctx is cancelled. Reloads are at least interval apart. onReload, when
// non-nil, receives the outcome of every reload.
func (s *CatalogService) Watch(
	ctx context.Context,
	w driven.Watcher,
	interval time.Duration,
	onReload func(*domain.LoadReport, error),
) error {
	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch source: %w", err)
	}
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if wait := interval - time.Since(last); wait > 0 && !last.IsZero() {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(wait):
				}
			}
			drain(changes)
			last = time.Now()

			logger.Info("Source changed, reloading catalog")
			report, err := s.Load(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Reload failed: %v", err)
			}
			if onReload != nil {
				onReload(report, err)
			}
		}
	}
}

// drain discards pending change signals so a burst triggers one reload.
func drain(ch <-chan struct{}) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
