// Package api provides the read-only HTTP API for the catalog.
//
// Routes:
//
//	GET /health
//	GET /api/catalog/:mainType   query params q, sub, min, max, trait, sort, dir, limit, offset, category
//	GET /api/facets/:mainType    query param sub
//	GET /api/records/:id
package api
