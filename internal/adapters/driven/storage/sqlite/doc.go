// Package sqlite exports published catalogs to a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A snapshot replaces the exported records wholesale while
// keeping a history of the loads that produced them:
//
//   - loads: one row per exported load cycle
//   - records: the published records with their attributes as JSON
//   - record_traits: one row per record trait
//   - diagnostics: the non-fatal problems reported by each load
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Thread Safety
//
// All operations are thread-safe. Each snapshot is written in one transaction.
package sqlite
