package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// DefaultConcurrency bounds parallel document fetches when unset.
const DefaultConcurrency = 4

// Loader runs one load cycle: manifest, fetch, parse, extract, normalise,
// build, sort and publish.
type Loader struct {
	source      driven.DocumentSource
	normaliser  driven.ItemNormaliser
	store       driven.RecordStore
	extractor   *Extractor
	concurrency int
	now         func() time.Time
}

// NewLoader creates a loader. A concurrency below 1 uses DefaultConcurrency.
func NewLoader(
	source driven.DocumentSource,
	normaliser driven.ItemNormaliser,
	store driven.RecordStore,
	taxonomy *domain.Taxonomy,
	concurrency int,
) *Loader {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		source:      source,
		normaliser:  normaliser,
		store:       store,
		extractor:   NewExtractor(NewCategoryResolver(taxonomy)),
		concurrency: concurrency,
		now:         time.Now,
	}
}

type fetchResult struct {
	raw *domain.RawDocument
	err error
}

// Load ingests every manifest document and replaces the store contents.
// Documents are fetched in parallel but processed in manifest order, and
// the store is only touched once every document has been processed.
func (l *Loader) Load(ctx context.Context) (*domain.LoadReport, error) {
	logger.Section("Catalog Load")
	report := &domain.LoadReport{
		LoadID:    uuid.New().String(),
		StartedAt: l.now(),
	}

	manifest, err := l.source.Manifest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrManifestUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrManifestUnavailable, err)
		}
		return nil, err
	}
	manifest = dedupe(manifest)
	report.Documents = manifest
	logger.Info("Manifest lists %d document(s) from %s source", len(manifest), l.source.Type())

	fetched, err := l.fetchAll(ctx, manifest)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	for i, id := range manifest {
		res := fetched[i]
		if res.err != nil {
			report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
				Kind:     domain.DiagFetchFailed,
				Document: id,
				Message:  res.err.Error(),
			})
			continue
		}
		doc, err := parseDocument(res.raw)
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
				Kind:     domain.DiagParseFailed,
				Document: id,
				Message:  err.Error(),
			})
			continue
		}

		candidates, diags := l.extractor.Extract(doc)
		report.Diagnostics = append(report.Diagnostics, diags...)
		for _, c := range candidates {
			records = append(records, BuildRecord(c, l.normaliser.Normalise(c.Item)))
		}
		logger.Debug("Document %s: %d record(s), %d diagnostic(s)", id, len(candidates), len(diags))
	}

	SortByName(records)

	if err := l.store.Replace(ctx, records); err != nil {
		return nil, fmt.Errorf("publish catalog: %w", err)
	}

	report.Records = len(records)
	report.Counts = make(map[domain.MainType]int)
	for _, r := range records {
		report.Counts[r.MainType]++
	}
	report.FinishedAt = l.now()

	for _, d := range report.Diagnostics {
		logger.Warn("%s", d)
	}
	logger.Info("Loaded %d record(s) with %d diagnostic(s) in %s",
		report.Records, len(report.Diagnostics), report.Duration())
	return report, nil
}

// fetchAll retrieves every document with bounded parallelism. Individual
// failures are kept per position; only cancellation aborts the load.
func (l *Loader) fetchAll(ctx context.Context, manifest []string) ([]fetchResult, error) {
	results := make([]fetchResult, len(manifest))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, id := range manifest {
		g.Go(func() error {
			raw, err := l.source.Fetch(gctx, id)
			results[i] = fetchResult{raw: raw, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load cancelled: %w", err)
	}
	return results, nil
}

func parseDocument(raw *domain.RawDocument) (domain.Document, error) {
	if raw == nil {
		return domain.Document{}, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	v, err := oj.Parse(raw.Content)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse JSON: %w", err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: top level is %T, want object", domain.ErrInvalidInput, v)
	}
	return domain.Document{ID: raw.ID, Root: root}, nil
}

// SortByName orders records by case-insensitive name. Equal names keep
// their ingestion order.
func SortByName(records []domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			logger.Debug("Skipping duplicate or empty manifest entry %q", id)
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
