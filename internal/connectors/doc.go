// Package connectors provides the document sources the catalog loads from.
// Each source knows how to read the manifest and the documents it lists
// from one kind of storage (local directory, GitHub repository).
package connectors
