package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// defaultLimit keeps tool responses small enough for a model context.
const defaultLimit = 25

// QueryInput is the input schema for the query_catalog tool.
type QueryInput struct {
	MainType      string `json:"main_type" jsonschema:"main type to browse: equipment, spells or skills"`
	SubType       string `json:"sub_type,omitempty" jsonschema:"sub type within the main type (default All)"`
	Text          string `json:"text,omitempty" jsonschema:"case-insensitive substring matched against the name"`
	Trait         string `json:"trait,omitempty" jsonschema:"only records carrying this exact trait"`
	MinLevel      string `json:"min_level,omitempty" jsonschema:"inclusive lower level bound"`
	MaxLevel      string `json:"max_level,omitempty" jsonschema:"inclusive upper level bound"`
	Sort          string `json:"sort,omitempty" jsonschema:"attribute to sort by (default level)"`
	Descending    bool   `json:"descending,omitempty" jsonschema:"sort in descending order"`
	MatchCategory bool   `json:"match_category,omitempty" jsonschema:"also match text against the category label"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (default 25)"`
	Offset        int    `json:"offset,omitempty" jsonschema:"rows to skip after sorting"`
}

// QueryOutput is the output schema for the query_catalog tool.
type QueryOutput struct {
	Columns []string    `json:"columns"`
	Rows    []RowOutput `json:"rows"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
}

// RowOutput is one projected record.
type RowOutput struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

// FacetsInput is the input schema for the catalog_facets tool.
type FacetsInput struct {
	MainType string `json:"main_type,omitempty" jsonschema:"main type to list facets for; empty covers the whole catalog"`
	SubType  string `json:"sub_type,omitempty" jsonschema:"narrow trait options to one sub type"`
}

// FacetsOutput is the output schema for the catalog_facets tool.
type FacetsOutput struct {
	MainTypes []string `json:"main_types"`
	SubTypes  []string `json:"sub_types,omitempty"`
	Traits    []string `json:"traits"`
}

// RecordInput is the input schema for the get_record tool.
type RecordInput struct {
	ID string `json:"id" jsonschema:"record identifier as returned by query_catalog"`
}

// RecordOutput is the output schema for the get_record tool.
type RecordOutput struct {
	Record map[string]any `json:"record"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_catalog",
		Description: "Filter, sort and page the catalog within one main type",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalog_facets",
		Description: "List the sub types and traits available for a main type",
	}, s.handleFacets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_record",
		Description: "Return every attribute of a single catalog record",
	}, s.handleRecord)
}

// handleQuery handles the query_catalog tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	q := domain.Query{
		Scope: scopeOf(input.MainType, input.SubType),
		Filters: domain.Filters{
			Text:          input.Text,
			Trait:         input.Trait,
			Levels:        domain.ParseLevelRange(input.MinLevel, input.MaxLevel),
			MatchCategory: input.MatchCategory,
		},
		Limit:  limit,
		Offset: input.Offset,
	}
	if input.Sort != "" {
		q.Sort = domain.SortSpec{Key: input.Sort}
		if input.Descending {
			q.Sort.Direction = domain.Descending
		}
	}

	res, err := s.ports.Catalog.Query(ctx, q)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Columns: make([]string, len(res.Columns)),
		Rows:    make([]RowOutput, len(res.Rows)),
		Count:   len(res.Rows),
		Total:   res.Total,
	}
	for i, c := range res.Columns {
		output.Columns[i] = c.Label
	}
	for i := range res.Rows {
		output.Rows[i] = RowOutput{ID: res.Records[i].ID, Values: res.Rows[i]}
	}

	return nil, output, nil
}

// handleFacets handles the catalog_facets tool invocation.
func (s *Server) handleFacets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FacetsInput,
) (*mcp.CallToolResult, FacetsOutput, error) {
	scope := scopeOf(input.MainType, input.SubType)
	facets, err := s.ports.Catalog.Facets(ctx, scope)
	if err != nil {
		return nil, FacetsOutput{}, err
	}

	mainTypes := s.ports.Catalog.Taxonomy().MainTypes()
	output := FacetsOutput{
		MainTypes: make([]string, len(mainTypes)),
		SubTypes:  facets.SubTypes,
		Traits:    facets.Traits,
	}
	for i, mt := range mainTypes {
		output.MainTypes[i] = mt.String()
	}
	if output.Traits == nil {
		output.Traits = []string{}
	}

	return nil, output, nil
}

// handleRecord handles the get_record tool invocation.
func (s *Server) handleRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	rec, err := s.ports.Catalog.Record(ctx, input.ID)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	return nil, RecordOutput{Record: rec.Attributes()}, nil
}

// scopeOf builds a scope from tool arguments.
func scopeOf(mainType, subType string) domain.Scope {
	return domain.Scope{MainType: domain.MainType(mainType), SubType: subType}
}
