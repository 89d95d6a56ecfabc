// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentSource: Reads the manifest and data documents
//   - ItemNormaliser: Normalises raw item fields before records are built
//   - RecordStore: Holds the published catalog and its facet index
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Watcher: Change notifications from a document source. Without it, reload is manual.
//   - SnapshotWriter: Exports the catalog. Without it, export is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
