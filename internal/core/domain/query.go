package domain

import (
	"strconv"
	"strings"
)

// DefaultLimit is the number of rows returned when a query sets no limit.
const DefaultLimit = 200

// Scope is the active navigation partition.
type Scope struct {
	MainType MainType
	SubType  string
}

// IsAll reports whether the scope selects every sub type.
func (s Scope) IsAll() bool {
	return s.SubType == "" || s.SubType == SubTypeAll
}

// Contains reports whether a record falls within the scope.
// An empty main type matches every record.
func (s Scope) Contains(r Record) bool {
	if s.MainType != "" && r.MainType != s.MainType {
		return false
	}
	return s.IsAll() || r.SubType == s.SubType
}

// String renders the scope as "mainType" or "mainType/SubType".
func (s Scope) String() string {
	if s.IsAll() {
		return string(s.MainType)
	}
	return string(s.MainType) + "/" + s.SubType
}

// LevelRange is an inclusive level bound pair. A nil bound is unbounded.
type LevelRange struct {
	Min *int
	Max *int
}

// Contains reports whether level lies within the range.
func (r LevelRange) Contains(level int) bool {
	if r.Min != nil && level < *r.Min {
		return false
	}
	if r.Max != nil && level > *r.Max {
		return false
	}
	return true
}

// IsSet reports whether either bound is present.
func (r LevelRange) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// ParseLevelRange parses user supplied bounds.
// Empty or unparseable bounds are treated as unbounded.
func ParseLevelRange(minLevel, maxLevel string) LevelRange {
	return LevelRange{Min: parseBound(minLevel), Max: parseBound(maxLevel)}
}

func parseBound(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// Filters are the facet predicates of a query.
type Filters struct {
	// Text is matched case-insensitively as a substring of the name.
	Text string

	// Levels bounds the record level. Ignored in level-less scopes.
	Levels LevelRange

	// Trait selects records carrying this exact trait.
	Trait string

	// MatchCategory extends the text match to the category label.
	MatchCategory bool
}

// Direction is a sort direction.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection parses "asc" or "desc". Anything else is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Descending
	}
	return Ascending
}

// SortSpec selects the sort key and direction.
type SortSpec struct {
	Key       string
	Direction Direction
}

// DefaultSort orders by level ascending.
var DefaultSort = SortSpec{Key: FieldLevel, Direction: Ascending}

// Query is a complete catalog lookup.
type Query struct {
	Scope   Scope
	Filters Filters
	Sort    SortSpec

	// Limit caps the returned rows. Zero means DefaultLimit.
	Limit int

	// Offset skips rows after sorting.
	Offset int
}

// Result is the outcome of a query.
type Result struct {
	// Scope echoes the queried scope.
	Scope Scope

	// Columns is the schema the rows were projected with.
	Columns []Column

	// Records are the sorted, paginated records.
	Records []Record

	// Rows are the projected display tuples, parallel to Records.
	Rows [][]string

	// Total is the number of matches before pagination.
	Total int
}

// Facets are the option lists for a scope.
type Facets struct {
	Scope    Scope
	SubTypes []string
	Traits   []string
}
