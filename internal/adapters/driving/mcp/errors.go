// Package mcp provides an MCP (Model Context Protocol) server adapter for Grimoire.
// It lets AI assistants browse the catalog: query records, list facets and
// read single records.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
