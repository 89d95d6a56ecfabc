package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func parseContents(t *testing.T, res *mcp.ReadResourceResult) map[string]any {
	t.Helper()
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	v, err := oj.ParseString(res.Contents[0].Text)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	return m
}

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid record URI", uri: "grimoire://records/rec-1", expected: "rec-1"},
		{name: "invalid prefix", uri: "file://records/rec-1", expected: ""},
		{name: "nested path", uri: "grimoire://records/a/b", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractRecordID(tt.uri))
		})
	}
}

func TestServer_handleTaxonomyResource(t *testing.T) {
	server, err := NewServer(&Ports{Catalog: &mockCatalogService{}})
	require.NoError(t, err)

	res, err := server.handleTaxonomyResource(context.Background(), makeReadResourceRequest("grimoire://taxonomy"))
	require.NoError(t, err)

	body := parseContents(t, res)
	assert.Equal(t, []any{"equipment", "spells", "skills"}, body["mainTypes"])

	keys, ok := body["keys"].([]any)
	require.True(t, ok)
	assert.Contains(t, keys, map[string]any{"key": "lightArmor", "mainType": "equipment", "subType": "Armor"})
}

func TestServer_handleLoadReportResource(t *testing.T) {
	ctx := context.Background()

	t.Run("not loaded", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{}})
		require.NoError(t, err)

		_, err = server.handleLoadReportResource(ctx, makeReadResourceRequest("grimoire://load-report"))
		assert.Error(t, err)
	})

	t.Run("summarises the last load", func(t *testing.T) {
		start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		report := &domain.LoadReport{
			LoadID:    "load-1",
			Documents: []string{"armor.json", "spells.json"},
			Records:   3,
			Counts:    map[domain.MainType]int{domain.MainTypeEquipment: 3},
			Diagnostics: []domain.Diagnostic{
				{Kind: domain.DiagUnmappedKey, Document: "armor.json", Key: "misc", Message: "no mapping"},
			},
			StartedAt:  start,
			FinishedAt: start.Add(1500 * time.Millisecond),
		}
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{report: report}})
		require.NoError(t, err)

		res, err := server.handleLoadReportResource(ctx, makeReadResourceRequest("grimoire://load-report"))
		require.NoError(t, err)

		body := parseContents(t, res)
		assert.Equal(t, "load-1", body["loadId"])
		assert.EqualValues(t, 2, body["documents"])
		assert.EqualValues(t, 3, body["records"])
		assert.EqualValues(t, 1500, body["durationMs"])
		assert.Equal(t, map[string]any{"equipment": int64(3)}, body["counts"])

		diags, ok := body["diagnostics"].([]any)
		require.True(t, ok)
		require.Len(t, diags, 1)
		assert.Equal(t, "unmapped_key", diags[0].(map[string]any)["kind"])
	})
}

func TestServer_handleRecordResource(t *testing.T) {
	ctx := context.Background()
	rec := battlePlate()
	server, err := NewServer(&Ports{Catalog: &mockCatalogService{record: &rec}})
	require.NoError(t, err)

	t.Run("returns record attributes", func(t *testing.T) {
		res, err := server.handleRecordResource(ctx, makeReadResourceRequest("grimoire://records/rec-1"))
		require.NoError(t, err)

		body := parseContents(t, res)
		assert.Equal(t, "Battle Plate", body["name"])
		assert.Equal(t, []any{"Bulwark"}, body["traits"])
	})

	t.Run("invalid URI", func(t *testing.T) {
		_, err := server.handleRecordResource(ctx, makeReadResourceRequest("grimoire://records/"))
		assert.Error(t, err)
	})

	t.Run("unknown record", func(t *testing.T) {
		empty, err := NewServer(&Ports{Catalog: &mockCatalogService{}})
		require.NoError(t, err)

		_, err = empty.handleRecordResource(ctx, makeReadResourceRequest("grimoire://records/nope"))
		assert.Error(t, err)
	})
}
