package mcp

import (
	"context"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	result  *domain.Result
	facets  *domain.Facets
	record  *domain.Record
	report  *domain.LoadReport
	err     error
	queries []domain.Query
	scopes  []domain.Scope
}

func (m *mockCatalogService) Load(_ context.Context) (*domain.LoadReport, error) {
	return m.report, m.err
}

func (m *mockCatalogService) Query(_ context.Context, q domain.Query) (*domain.Result, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.Result{Scope: q.Scope}, nil
	}
	return m.result, nil
}

func (m *mockCatalogService) Facets(_ context.Context, scope domain.Scope) (*domain.Facets, error) {
	m.scopes = append(m.scopes, scope)
	if m.err != nil {
		return nil, m.err
	}
	if m.facets == nil {
		return &domain.Facets{Scope: scope}, nil
	}
	return m.facets, nil
}

func (m *mockCatalogService) Record(_ context.Context, _ string) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.record == nil {
		return nil, domain.ErrNotFound
	}
	return m.record, nil
}

func (m *mockCatalogService) Taxonomy() *domain.Taxonomy {
	return domain.DefaultTaxonomy()
}

func (m *mockCatalogService) LastReport() *domain.LoadReport {
	return m.report
}

func battlePlate() domain.Record {
	return domain.Record{
		ID:       "rec-1",
		Name:     "Battle Plate",
		MainType: domain.MainTypeEquipment,
		SubType:  "Armor",
		Category: "Heavy Armor",
		Level:    4,
		Traits:   []string{"Bulwark"},
		Source:   "Core",
		Details:  domain.EquipmentDetails{Price: "70", Bulk: "4"},
	}
}
