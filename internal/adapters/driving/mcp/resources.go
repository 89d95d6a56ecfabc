package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

const (
	// uriScheme is the custom URI scheme for Grimoire resources.
	uriScheme = "grimoire://"

	mimeJSON = "application/json"
)

var jsonOptions = &ojg.Options{Sort: true, Indent: 2}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "taxonomy",
		Name:        "taxonomy",
		Description: "Structural keys and the main type and sub type they map to",
		MIMEType:    mimeJSON,
	}, s.handleTaxonomyResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "load-report",
		Name:        "load-report",
		Description: "Summary and diagnostics of the most recent catalog load",
		MIMEType:    mimeJSON,
	}, s.handleLoadReportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{recordId}",
		Name:        "record",
		Description: "Every attribute of a single catalog record",
		MIMEType:    mimeJSON,
	}, s.handleRecordResource)
}

// handleTaxonomyResource returns the mapping table and main type order.
func (s *Server) handleTaxonomyResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	t := s.ports.Catalog.Taxonomy()

	order := make([]any, 0, len(t.MainTypes()))
	for _, mt := range t.MainTypes() {
		order = append(order, mt.String())
	}
	entries := make([]any, 0)
	for _, c := range t.Entries() {
		entries = append(entries, map[string]any{
			"key":      c.Key,
			"mainType": c.MainType.String(),
			"subType":  c.SubType,
		})
	}

	return jsonResult(req.Params.URI, map[string]any{
		"mainTypes": order,
		"keys":      entries,
	}), nil
}

// handleLoadReportResource returns the last load report.
func (s *Server) handleLoadReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	report := s.ports.Catalog.LastReport()
	if report == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	counts := make(map[string]any, len(report.Counts))
	for mt, n := range report.Counts {
		counts[mt.String()] = n
	}
	diags := make([]any, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		diags = append(diags, map[string]any{
			"kind":     string(d.Kind),
			"document": d.Document,
			"path":     d.Path,
			"key":      d.Key,
			"message":  d.Message,
		})
	}

	return jsonResult(req.Params.URI, map[string]any{
		"loadId":      report.LoadID,
		"documents":   len(report.Documents),
		"records":     report.Records,
		"counts":      counts,
		"diagnostics": diags,
		"durationMs":  report.Duration().Milliseconds(),
	}), nil
}

// handleRecordResource returns one record's attributes.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRecordID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Catalog.Record(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResult(req.Params.URI, rec.Attributes()), nil
}

func jsonResult(uri string, v any) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     oj.JSON(v, jsonOptions),
		}},
	}
}

// extractRecordID extracts the record ID from a URI like grimoire://records/{recordId}.
func extractRecordID(uri string) string {
	const prefix = uriScheme + "records/"

	id, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
