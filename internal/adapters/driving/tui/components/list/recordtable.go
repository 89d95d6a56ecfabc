// Package list provides the record table component for the TUI.
package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grimoire/internal/core/domain"
)

const (
	columnGap   = 2
	minColWidth = 4
)

// RecordTable renders a query result as a navigable table. The header
// marks the sorted column with an arrow and prefixes each label with the
// number key that sorts by it.
type RecordTable struct {
	result   *domain.Result
	sort     domain.SortSpec
	selected int
	offset   int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordTable creates an empty record table.
func NewRecordTable(s *styles.Styles) *RecordTable {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &RecordTable{styles: s, width: 80, height: 10}
}

// SetResult replaces the displayed result and resets the cursor.
func (t *RecordTable) SetResult(r *domain.Result, sort domain.SortSpec) {
	t.result = r
	t.sort = sort
	t.selected = 0
	t.offset = 0
}

// Result returns the displayed result.
func (t *RecordTable) Result() *domain.Result { return t.result }

// Columns returns the displayed column schema.
func (t *RecordTable) Columns() []domain.Column {
	if t.result == nil {
		return nil
	}
	return t.result.Columns
}

// Count returns the number of rows.
func (t *RecordTable) Count() int {
	if t.result == nil {
		return 0
	}
	return len(t.result.Rows)
}

// IsEmpty reports whether there are no rows.
func (t *RecordTable) IsEmpty() bool { return t.Count() == 0 }

// Selected returns the cursor index.
func (t *RecordTable) Selected() int { return t.selected }

// SelectedRecord returns the record under the cursor, or nil.
func (t *RecordTable) SelectedRecord() *domain.Record {
	if t.IsEmpty() || t.selected >= len(t.result.Records) {
		return nil
	}
	return &t.result.Records[t.selected]
}

// MoveUp moves the cursor up by n rows.
func (t *RecordTable) MoveUp(n int) {
	t.selected -= n
	if t.selected < 0 {
		t.selected = 0
	}
	t.scroll()
}

// MoveDown moves the cursor down by n rows.
func (t *RecordTable) MoveDown(n int) {
	t.selected += n
	if last := t.Count() - 1; t.selected > last {
		t.selected = max(last, 0)
	}
	t.scroll()
}

// PageSize returns the number of visible rows.
func (t *RecordTable) PageSize() int {
	// header line plus its border
	return max(t.height-2, 1)
}

func (t *RecordTable) scroll() {
	page := t.PageSize()
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+page {
		t.offset = t.selected - page + 1
	}
}

// SetDimensions sets the component dimensions.
func (t *RecordTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.scroll()
}

// View renders the table.
func (t *RecordTable) View() string {
	if t.IsEmpty() {
		return t.styles.Muted.Render("No records found.")
	}

	widths := t.columnWidths()
	header := make([]string, len(t.result.Columns))
	for i, c := range t.result.Columns {
		header[i] = fit(t.headerLabel(i, c), widths[i])
	}
	lines := []string{t.styles.Header.Render(strings.Join(header, strings.Repeat(" ", columnGap)))}

	end := min(t.offset+t.PageSize(), len(t.result.Rows))
	for i := t.offset; i < end; i++ {
		cells := make([]string, len(widths))
		for j, w := range widths {
			v := domain.Placeholder
			if j < len(t.result.Rows[i]) {
				v = t.result.Rows[i][j]
			}
			cells[j] = fit(v, w)
		}
		line := strings.Join(cells, strings.Repeat(" ", columnGap))
		if i == t.selected {
			lines = append(lines, t.styles.Selected.Render(line))
		} else {
			lines = append(lines, t.styles.Normal.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (t *RecordTable) headerLabel(i int, c domain.Column) string {
	label := c.Label
	if i < 9 {
		label = string(rune('1'+i)) + " " + label
	}
	if c.Key == t.sort.Key {
		if t.sort.Direction == domain.Descending {
			label += " ↓"
		} else {
			label += " ↑"
		}
	}
	return label
}

// columnWidths sizes each column to its widest cell, then shrinks the
// widest columns until the table fits the available width.
func (t *RecordTable) columnWidths() []int {
	cols := t.result.Columns
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(t.headerLabel(i, c))
	}
	for _, row := range t.result.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	budget := t.width - columnGap*(len(cols)-1)
	for total(widths) > budget {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}
