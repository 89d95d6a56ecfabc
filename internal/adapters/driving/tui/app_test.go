package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *mockCatalogService) {
	t.Helper()
	catalog := &mockCatalogService{records: []domain.Record{
		{ID: "a", Name: "Battle Plate", MainType: domain.MainTypeEquipment, SubType: "Armor", Level: 4},
		{ID: "b", Name: "Flak Vest", MainType: domain.MainTypeEquipment, SubType: "Armor", Level: 1},
	}}
	app, err := NewApp(&Ports{Catalog: catalog, QueryLimit: 10})
	require.NoError(t, err)
	app.SetDimensions(100, 24)
	drain(app, app.Init())
	return app, catalog
}

// drain runs cmd and feeds catalog results back into the app.
func drain(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			drain(app, c)
		}
	case messages.QueryCompleted, messages.FacetsLoaded, messages.CatalogReloaded,
		messages.RecordSelected, messages.ViewChanged:
		_, next := app.Update(m)
		drain(app, next)
	}
}

func press(app *App, k tea.KeyMsg) tea.Cmd {
	_, cmd := app.Update(k)
	drain(app, cmd)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Catalog: &mockCatalogService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingCatalogService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(&Ports{Catalog: &mockCatalogService{}})
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init_RunsFirstQuery(t *testing.T) {
	app, catalog := newTestApp(t)

	require.NotEmpty(t, catalog.queries)
	assert.Equal(t, 10, catalog.queries[0].Limit)
	assert.Equal(t, 2, app.Browse().Table().Count())
	assert.Contains(t, app.View(), "Battle Plate")
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Catalog: &mockCatalogService{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_OpenDetailAndBack(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, tea.KeyMsg{Type: tea.KeyDown})
	press(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
	require.NotNil(t, app.Detail().Record())
	assert.Equal(t, "b", app.Detail().Record().ID)
	assert.Contains(t, app.View(), "Flak Vest")

	press(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, runes("?"))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Keybindings")

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
}

func TestApp_HelpFromDetailReturnsToDetail(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewDetail, app.CurrentView())

	press(app, runes("?"))
	press(app, runes("?"))

	assert.Equal(t, messages.ViewDetail, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_CtrlCQuitsWhileEditing(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, runes("/"))
	require.True(t, app.Browse().Editing())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QTypesWhileEditing(t *testing.T) {
	app, catalog := newTestApp(t)
	press(app, runes("/"))

	press(app, runes("q"))

	assert.True(t, app.Browse().Editing())
	assert.Equal(t, "q", catalog.queries[len(catalog.queries)-1].Filters.Text)
}

func TestApp_CatalogReloaded(t *testing.T) {
	app, catalog := newTestApp(t)
	before := len(catalog.queries)

	_, cmd := app.Update(messages.CatalogReloaded{Report: &domain.LoadReport{Records: 2}})
	drain(app, cmd)

	assert.Greater(t, len(catalog.queries), before)
	assert.NoError(t, app.Err())
}

func TestApp_CatalogReloadedError(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.CatalogReloaded{Err: domain.ErrManifestUnavailable})

	assert.ErrorIs(t, app.Err(), domain.ErrManifestUnavailable)
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
