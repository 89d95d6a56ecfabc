// Package browse provides the catalog browser view: main type tabs,
// facet selectors, filter inputs and the record table.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
	"github.com/custodia-labs/grimoire/internal/core/services"
)

// ErrNoCatalogService indicates that no catalog service was provided.
var ErrNoCatalogService = errors.New("catalog service is required")

type focus int

const (
	focusTable focus = iota
	focusName
	focusLevels
)

// chrome is the number of lines around the table: tabs, filters, facets,
// two spacers and the status bar.
const chrome = 6

// View is the catalog browser. It owns the navigation state and turns
// every change into a catalog query.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	name      *input.FilterInput
	levels    *input.FilterInput
	table     *list.RecordTable
	statusbar *status.Bar

	catalog driving.CatalogService
	nav     *domain.Navigator
	facets  *domain.Facets
	limit   int
	ctx     context.Context

	seq    int
	focus  focus
	width  int
	height int
	err    error
}

// NewView creates a browse view over the catalog. A limit of zero uses
// the catalog default.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService, limit int) (*View, error) {
	if catalog == nil {
		return nil, ErrNoCatalogService
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		name:      input.NewFilterInput(s, "Name", "type to filter"),
		levels:    input.NewFilterInput(s, "Levels", "min-max"),
		table:     list.NewRecordTable(s),
		statusbar: status.NewBar(s, km),
		catalog:   catalog,
		nav:       domain.NewNavigator(catalog.Taxonomy()),
		limit:     limit,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.SetDimensions(v.width, v.height)
	return v, nil
}

// WithContext sets the context used for catalog calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init runs the first query.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh re-runs the query and reloads facets for the current scope.
func (v *View) Refresh() tea.Cmd {
	return tea.Batch(v.queryCmd(), v.facetsCmd())
}

func (v *View) queryCmd() tea.Cmd {
	v.seq++
	seq := v.seq
	q := v.nav.Query(v.limit)
	ctx := v.ctx
	catalog := v.catalog
	return func() tea.Msg {
		res, err := catalog.Query(ctx, q)
		return messages.QueryCompleted{Seq: seq, Result: res, Err: err}
	}
}

func (v *View) facetsCmd() tea.Cmd {
	scope := v.nav.Scope()
	ctx := v.ctx
	catalog := v.catalog
	return func() tea.Msg {
		f, err := catalog.Facets(ctx, scope)
		return messages.FacetsLoaded{Facets: f, Err: err}
	}
}

func (v *View) reloadCmd() tea.Cmd {
	ctx := v.ctx
	catalog := v.catalog
	return func() tea.Msg {
		report, err := catalog.Load(ctx)
		return messages.CatalogReloaded{Report: report, Err: err}
	}
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.Editing() {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.FacetsLoaded:
		if msg.Err == nil && msg.Facets != nil && msg.Facets.Scope.MainType == v.nav.Scope().MainType {
			v.facets = msg.Facets
		}
		return v, nil

	case messages.CatalogReloaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetMessage(fmt.Sprintf("reloaded %d record(s)", msg.Report.Records))
		return v, v.Refresh()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}
	return v, nil
}

func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.table.SetResult(msg.Result, v.nav.Sort())
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetCounts(len(msg.Result.Rows), msg.Result.Total)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.table.MoveUp(1)
	case keymap.Matches(k, v.keymap.Down):
		v.table.MoveDown(1)
	case keymap.Matches(k, v.keymap.PageUp):
		v.table.MoveUp(v.table.PageSize())
	case keymap.Matches(k, v.keymap.PageDown):
		v.table.MoveDown(v.table.PageSize())

	case keymap.Matches(k, v.keymap.Select):
		if r := v.table.SelectedRecord(); r != nil {
			rec := *r
			return v, func() tea.Msg { return messages.RecordSelected{Record: rec} }
		}

	case keymap.Matches(k, v.keymap.NextType):
		v.nav.NextMainType()
		v.facets = nil
		return v, v.Refresh()

	case keymap.Matches(k, v.keymap.SubType):
		v.nav.SelectSubType(next(v.subTypeOptions(), v.nav.Scope().SubType))
		v.nav.SetTrait("")
		return v, v.Refresh()

	case keymap.Matches(k, v.keymap.Trait):
		v.nav.SetTrait(next(v.traitOptions(), v.nav.Filters().Trait))
		return v, v.queryCmd()

	case keymap.Matches(k, v.keymap.Category):
		v.nav.SetMatchCategory(!v.nav.Filters().MatchCategory)
		return v, v.queryCmd()

	case keymap.Matches(k, v.keymap.Sort):
		idx, _ := strconv.Atoi(k)
		if cols := v.table.Columns(); idx >= 1 && idx <= len(cols) {
			v.nav.ToggleSort(cols[idx-1].Key)
			return v, v.queryCmd()
		}

	case keymap.Matches(k, v.keymap.Filter):
		v.focus = focusName
		return v, v.name.Focus()

	case keymap.Matches(k, v.keymap.Levels):
		if v.levelless() {
			return v, nil
		}
		v.focus = focusLevels
		return v, v.levels.Focus()

	case keymap.Matches(k, v.keymap.Reload):
		v.statusbar.SetState(status.StateLoading)
		return v, v.reloadCmd()
	}
	return v, nil
}

// handleEditKey routes keys to the focused input. The name filter applies
// as the user types; the level range applies on enter.
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v.focus == focusLevels {
			v.nav.SetLevelRange(ParseLevels(v.levels.Value()))
		}
		v.blur()
		return v, v.queryCmd()
	case tea.KeyEsc:
		if v.focus == focusName {
			v.name.Reset()
			v.nav.SetText("")
		}
		v.blur()
		return v, v.queryCmd()
	}

	var cmd tea.Cmd
	if v.focus == focusName {
		before := v.name.Value()
		v.name, cmd = v.name.Update(msg)
		if v.name.Value() != before {
			v.nav.SetText(v.name.Value())
			return v, tea.Batch(cmd, v.queryCmd())
		}
		return v, cmd
	}
	v.levels, cmd = v.levels.Update(msg)
	return v, cmd
}

func (v *View) blur() {
	v.focus = focusTable
	v.name.Blur()
	v.levels.Blur()
}

// ParseLevels splits "min-max" input into its bounds. A single number
// selects exactly that level; "3-" and "-5" leave one side open.
func ParseLevels(s string) (minLevel, maxLevel string) {
	s = strings.TrimSpace(s)
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return s, s
	}
	return strings.TrimSpace(lo), strings.TrimSpace(hi)
}

func (v *View) levelless() bool {
	return v.catalog.Taxonomy().IsLevelless(v.nav.Scope())
}

// subTypeOptions returns the facet sub types, which already lead with
// SubTypeAll, or just SubTypeAll before facets arrive.
func (v *View) subTypeOptions() []string {
	if v.facets == nil || len(v.facets.SubTypes) == 0 {
		return []string{domain.SubTypeAll}
	}
	return v.facets.SubTypes
}

func (v *View) traitOptions() []string {
	opts := []string{""}
	if v.facets != nil {
		opts = append(opts, v.facets.Traits...)
	}
	return opts
}

// next returns the option after current, wrapping around. An unknown
// current value selects the first option.
func next(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// View renders the browser.
func (v *View) View() string {
	sections := []string{
		v.renderTabs(),
		v.renderFilters(),
		v.renderFacets(),
		"",
		v.table.View(),
		v.renderMeta(),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	gap := v.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, v.statusbar.View())
}

// renderMeta summarises the record under the cursor.
func (v *View) renderMeta() string {
	rec := v.table.SelectedRecord()
	if rec == nil {
		return ""
	}
	return v.styles.Muted.Render(services.RecordMeta(*rec, v.catalog.Taxonomy()))
}

func (v *View) renderTabs() string {
	active := v.nav.Scope().MainType
	tabs := make([]string, 0, len(v.catalog.Taxonomy().MainTypes()))
	for _, mt := range v.catalog.Taxonomy().MainTypes() {
		if mt == active {
			tabs = append(tabs, v.styles.ActiveTab.Render(mt.Label()))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(mt.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderFilters() string {
	parts := []string{v.name.View()}
	if !v.levelless() {
		parts = append(parts, "   ", v.levels.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (v *View) renderFacets() string {
	trait := v.nav.Filters().Trait
	if trait == "" {
		trait = "any"
	}
	match := "name"
	if v.nav.Filters().MatchCategory {
		match = "name+category"
	}

	subCount, traitCount := 0, 0
	if v.facets != nil {
		subCount, traitCount = len(v.facets.SubTypes), len(v.facets.Traits)
	}
	return strings.Join([]string{
		v.chip("Sub type", v.nav.Scope().SubType, subCount),
		v.chip("Trait", trait, traitCount),
		v.styles.Muted.Render("Match: ") + v.styles.Normal.Render(match),
	}, "   ")
}

func (v *View) chip(label, value string, options int) string {
	return v.styles.Muted.Render(label+": ") +
		v.styles.ActiveChip.Render(value) +
		v.styles.Chip.Render(fmt.Sprintf(" (%d)", options))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.name.SetWidth(width / 2)
	v.levels.SetWidth(20)
	v.table.SetDimensions(width, height-chrome)
	v.statusbar.SetWidth(width)
}

// Editing reports whether a filter input has focus. Global keys such as
// quit must not fire while the user is typing.
func (v *View) Editing() bool {
	return v.focus != focusTable
}

// Navigator returns the navigation state.
func (v *View) Navigator() *domain.Navigator { return v.nav }

// Table returns the record table.
func (v *View) Table() *list.RecordTable { return v.table }

// Facets returns the last loaded facets, or nil.
func (v *View) Facets() *domain.Facets { return v.facets }

// Err returns the last error shown.
func (v *View) Err() error { return v.err }

// StatusBar returns the status bar.
func (v *View) StatusBar() *status.Bar { return v.statusbar }
