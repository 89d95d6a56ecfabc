package browse

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/core/domain"
)

type fakeCatalog struct {
	queries []domain.Query
	scopes  []domain.Scope
	loads   int
	err     error
}

func (f *fakeCatalog) Load(_ context.Context) (*domain.LoadReport, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LoadReport{LoadID: "reload", Records: 2}, nil
}

func (f *fakeCatalog) Query(_ context.Context, q domain.Query) (*domain.Result, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Result{
		Scope:   q.Scope,
		Columns: domain.SchemaFor(q.Scope),
		Records: []domain.Record{
			{ID: "a", Name: "Battle Plate", MainType: q.Scope.MainType, Level: 6, Category: "Heavy Armor"},
			{ID: "b", Name: "Flak Vest", MainType: q.Scope.MainType},
		},
		Rows:  [][]string{{"Battle Plate", "4"}, {"Flak Vest", "1"}},
		Total: 12,
	}, nil
}

func (f *fakeCatalog) Facets(_ context.Context, scope domain.Scope) (*domain.Facets, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Facets{
		Scope:    scope,
		SubTypes: []string{domain.SubTypeAll, "Armor", "Weapons"},
		Traits:   []string{"Bulwark", "Flexible"},
	}, nil
}

func (f *fakeCatalog) Record(_ context.Context, _ string) (*domain.Record, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) Taxonomy() *domain.Taxonomy { return domain.DefaultTaxonomy() }

func (f *fakeCatalog) LastReport() *domain.LoadReport { return nil }

// collect runs a command and every command it batches, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// send delivers a message and feeds every resulting message back in.
func send(v *View, msg tea.Msg) []tea.Msg {
	_, cmd := v.Update(msg)
	msgs := collect(cmd)
	for _, m := range msgs {
		switch m.(type) {
		case messages.QueryCompleted, messages.FacetsLoaded, messages.CatalogReloaded:
			send(v, m)
		}
	}
	return msgs
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedView(t *testing.T) (*View, *fakeCatalog) {
	t.Helper()
	catalog := &fakeCatalog{}
	v, err := NewView(nil, nil, catalog, 25)
	require.NoError(t, err)
	for _, m := range collect(v.Init()) {
		v.Update(m)
	}
	return v, catalog
}

func TestNewView_RequiresCatalog(t *testing.T) {
	v, err := NewView(nil, nil, nil, 0)

	assert.ErrorIs(t, err, ErrNoCatalogService)
	assert.Nil(t, v)
}

func TestView_Init_QueriesFirstMainType(t *testing.T) {
	v, catalog := newLoadedView(t)

	require.Len(t, catalog.queries, 1)
	q := catalog.queries[0]
	assert.Equal(t, domain.Scope{MainType: domain.MainTypeEquipment, SubType: domain.SubTypeAll}, q.Scope)
	assert.Equal(t, domain.DefaultSort, q.Sort)
	assert.Equal(t, 25, q.Limit)

	assert.Equal(t, 2, v.Table().Count())
	require.NotNil(t, v.Facets())
	shown, total := v.StatusBar().Counts()
	assert.Equal(t, 2, shown)
	assert.Equal(t, 12, total)
}

func TestView_NextType(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("tab"))

	assert.Equal(t, domain.MainTypeSpells, v.Navigator().Scope().MainType)
	last := catalog.queries[len(catalog.queries)-1]
	assert.Equal(t, domain.MainTypeSpells, last.Scope.MainType)
	assert.Equal(t, domain.MainTypeSpells, catalog.scopes[len(catalog.scopes)-1].MainType)
}

func TestView_CycleSubTypeAndTrait(t *testing.T) {
	v, _ := newLoadedView(t)

	send(v, key("t"))
	assert.Equal(t, "Bulwark", v.Navigator().Filters().Trait)

	send(v, key("s"))
	assert.Equal(t, "Armor", v.Navigator().Scope().SubType)
	assert.Empty(t, v.Navigator().Filters().Trait)

	send(v, key("s"))
	send(v, key("s"))
	assert.Equal(t, domain.SubTypeAll, v.Navigator().Scope().SubType)
}

func TestView_SubTypeOptionsFollowFacets(t *testing.T) {
	v, err := NewView(nil, nil, &fakeCatalog{}, 25)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SubTypeAll}, v.subTypeOptions(), "before facets arrive")

	for _, m := range collect(v.Init()) {
		v.Update(m)
	}
	assert.Equal(t, []string{domain.SubTypeAll, "Armor", "Weapons"}, v.subTypeOptions())

	send(v, key("s"))
	assert.Equal(t, "Armor", v.Navigator().Scope().SubType)
}

func TestView_SortByColumnNumber(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("1"))
	assert.Equal(t, domain.SortSpec{Key: domain.FieldName, Direction: domain.Ascending}, v.Navigator().Sort())

	send(v, key("1"))
	assert.Equal(t, domain.Descending, v.Navigator().Sort().Direction)
	assert.Equal(t, domain.Descending, catalog.queries[len(catalog.queries)-1].Sort.Direction)

	before := len(catalog.queries)
	send(v, key("9"))
	assert.Len(t, catalog.queries, before)
}

func TestView_NameFilterAppliesWhileTyping(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("/"))
	require.True(t, v.Editing())

	send(v, key("q"))
	assert.True(t, v.Editing())
	assert.Equal(t, "q", v.Navigator().Filters().Text)
	assert.Equal(t, "q", catalog.queries[len(catalog.queries)-1].Filters.Text)

	send(v, key("enter"))
	assert.False(t, v.Editing())
	assert.Equal(t, "q", v.Navigator().Filters().Text)
}

func TestView_NameFilterEscClears(t *testing.T) {
	v, _ := newLoadedView(t)

	send(v, key("/"))
	send(v, key("plate"))
	send(v, key("esc"))

	assert.False(t, v.Editing())
	assert.Empty(t, v.Navigator().Filters().Text)
}

func TestView_LevelRangeAppliesOnEnter(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("l"))
	send(v, key("2-8"))
	assert.Equal(t, domain.LevelRange{}, v.Navigator().Filters().Levels)

	send(v, key("enter"))

	assert.Equal(t, domain.ParseLevelRange("2", "8"), v.Navigator().Filters().Levels)
	assert.Equal(t, domain.ParseLevelRange("2", "8"), catalog.queries[len(catalog.queries)-1].Filters.Levels)
}

func TestView_LevelsDisabledForLevellessScope(t *testing.T) {
	v, _ := newLoadedView(t)
	require.NoError(t, v.Navigator().SelectMainType(domain.MainTypeSkills))

	send(v, key("l"))

	assert.False(t, v.Editing())
	assert.NotContains(t, v.View(), "Levels:")
}

func TestView_ToggleMatchCategory(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("c"))

	assert.True(t, v.Navigator().Filters().MatchCategory)
	assert.True(t, catalog.queries[len(catalog.queries)-1].Filters.MatchCategory)
}

func TestView_SelectRecord(t *testing.T) {
	v, _ := newLoadedView(t)

	send(v, key("down"))
	msgs := send(v, key("enter"))

	require.Len(t, msgs, 1)
	selected, ok := msgs[0].(messages.RecordSelected)
	require.True(t, ok)
	assert.Equal(t, "b", selected.Record.ID)
}

func TestView_Reload(t *testing.T) {
	v, catalog := newLoadedView(t)

	send(v, key("r"))

	assert.Equal(t, 1, catalog.loads)
	assert.Equal(t, status.StateReady, v.StatusBar().State())
	assert.Contains(t, v.StatusBar().Message(), "reloaded 2 record(s)")
}

func TestView_QueryError(t *testing.T) {
	v, catalog := newLoadedView(t)
	catalog.err = domain.ErrNotLoaded

	send(v, key("tab"))

	assert.ErrorIs(t, v.Err(), domain.ErrNotLoaded)
	assert.Equal(t, status.StateError, v.StatusBar().State())
}

func TestView_DropsSupersededResults(t *testing.T) {
	v, _ := newLoadedView(t)

	_, first := v.Update(key("1"))
	_, second := v.Update(key("1"))
	firstMsgs := collect(first)
	secondMsgs := collect(second)

	v.Update(secondMsgs[0])
	v.Update(messages.QueryCompleted{
		Seq: firstMsgs[0].(messages.QueryCompleted).Seq,
		Err: errors.New("stale"),
	})

	assert.NoError(t, v.Err())
}

func TestView_View(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetDimensions(100, 20)

	view := v.View()

	assert.Contains(t, view, "Equipment")
	assert.Contains(t, view, "Spells")
	assert.Contains(t, view, "Sub type:")
	assert.Contains(t, view, "any")
	assert.Contains(t, view, "Battle Plate")
	assert.Contains(t, view, "2 of 12")
	assert.Contains(t, view, "Lvl 6 | Heavy Armor")
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		in       string
		min, max string
	}{
		{"2-8", "2", "8"},
		{" 3 - ", "3", ""},
		{"-5", "", "5"},
		{"4", "4", "4"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lo, hi := ParseLevels(tt.in)
			assert.Equal(t, tt.min, lo)
			assert.Equal(t, tt.max, hi)
		})
	}
}

func TestNext(t *testing.T) {
	opts := []string{"All", "Armor", "Weapons"}

	assert.Equal(t, "Armor", next(opts, "All"))
	assert.Equal(t, "All", next(opts, "Weapons"))
	assert.Equal(t, "All", next(opts, "Missing"))
}
