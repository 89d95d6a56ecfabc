package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
)

// Ensure fakeSource implements the interface.
var _ driven.DocumentSource = (*fakeSource)(nil)

// fakeSource serves documents from memory.
type fakeSource struct {
	mu          sync.Mutex
	manifest    []string
	manifestErr error
	docs        map[string]string
	fetchErrs   map[string]error
	fetched     []string

	// onManifest runs at the start of every Manifest call.
	onManifest func()
}

func newFakeSource(docs map[string]string, manifest ...string) *fakeSource {
	return &fakeSource{manifest: manifest, docs: docs, fetchErrs: map[string]error{}}
}

func (f *fakeSource) Type() domain.SourceKind { return "fake" }

func (f *fakeSource) Manifest(_ context.Context) ([]string, error) {
	if f.onManifest != nil {
		f.onManifest()
	}
	if f.manifestErr != nil {
		return nil, f.manifestErr
	}
	return append([]string(nil), f.manifest...), nil
}

func (f *fakeSource) Fetch(ctx context.Context, id string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()
	if err := f.fetchErrs[id]; err != nil {
		return nil, err
	}
	body, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	return &domain.RawDocument{ID: id, Content: []byte(body)}, nil
}

// fakeWatcher emits change signals on demand.
type fakeWatcher struct {
	ch chan struct{}
}

func (w *fakeWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// recordingSnapshot captures exported records.
type recordingSnapshot struct {
	report  domain.LoadReport
	records []domain.Record
	err     error
}

func (r *recordingSnapshot) WriteSnapshot(_ context.Context, report domain.LoadReport, records []domain.Record) error {
	if r.err != nil {
		return r.err
	}
	r.report = report
	r.records = records
	return nil
}

func (r *recordingSnapshot) Close() error { return nil }
