// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// QueryCompleted carries a query result back to the model. Seq identifies
// the request so results of superseded queries can be dropped.
type QueryCompleted struct {
	Seq    int
	Result *domain.Result
	Err    error
}

// FacetsLoaded carries the facet options for the active scope.
type FacetsLoaded struct {
	Facets *domain.Facets
	Err    error
}

// RecordSelected is sent when a record is opened from the table.
type RecordSelected struct {
	Record domain.Record
}

// CatalogReloaded is sent after the catalog was loaded again.
type CatalogReloaded struct {
	Report *domain.LoadReport
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the catalog table with facets and filters.
	ViewBrowse ViewType = iota
	// ViewDetail shows every field of one record.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
