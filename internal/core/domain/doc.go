// Package domain defines the core catalog entities for Grimoire.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A normalised catalog entry (equipment, spell, skill)
//   - Classification: The taxonomy position of a record
//   - Taxonomy: The structural-key mapping table
//   - Query: Filters, sort and paging for a catalog lookup
//   - Navigator: The browse state machine shared by interactive hosts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
