package domain

import (
	"fmt"
	"time"
)

// DiagnosticKind classifies a non-fatal load problem.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagFetchFailed DiagnosticKind = "fetch_failed"
	DiagParseFailed DiagnosticKind = "parse_failed"
	DiagUnmappedKey DiagnosticKind = "unmapped_key"
	DiagInvalidItem DiagnosticKind = "invalid_item"
	DiagMissingName DiagnosticKind = "missing_name"
)

// Diagnostic records a skipped document, branch or item.
type Diagnostic struct {
	Kind     DiagnosticKind
	Document string
	Path     string
	Key      string
	Message  string
}

// String renders the diagnostic for logs.
func (d Diagnostic) String() string {
	loc := d.Document
	if d.Path != "" {
		loc += ":" + d.Path
	}
	if d.Key != "" {
		return fmt.Sprintf("%s %s (key %q): %s", d.Kind, loc, d.Key, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Kind, loc, d.Message)
}

// LoadReport summarises one load cycle.
type LoadReport struct {
	// LoadID uniquely identifies the load cycle.
	LoadID string

	// Documents is the manifest in ingestion order.
	Documents []string

	// Records is the number of records published.
	Records int

	// Counts is the number of records per main type.
	Counts map[MainType]int

	// Diagnostics lists every non-fatal problem in ingestion order.
	Diagnostics []Diagnostic

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the load took.
func (r LoadReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
