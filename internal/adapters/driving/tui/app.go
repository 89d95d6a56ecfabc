package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/views/browse"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/views/detail"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// browseView is the catalog table with tabs and facets.
	browseView *browse.View

	// detailView shows the selected record.
	detailView *detail.View

	// currentView tracks which view is active; previousView is restored
	// when help is closed.
	currentView  messages.ViewType
	previousView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	browseView, err := browse.NewView(s, km, ports.Catalog, ports.QueryLimit)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		browseView:  browseView,
		detailView:  detail.NewView(s, km, ports.Catalog.Taxonomy()),
		currentView: messages.ViewBrowse,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs the first catalog query.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("grimoire"),
		a.browseView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.RecordSelected:
		a.detailView.SetRecord(msg.Record)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.QueryCompleted, messages.FacetsLoaded,
		messages.CatalogReloaded, messages.ErrorOccurred:
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd
	}

	if a.currentView == messages.ViewDetail {
		a.detailView, cmd = a.detailView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	if k == "ctrl+c" {
		return a, tea.Quit
	}

	// Text inputs own every key while focused.
	if a.currentView == messages.ViewBrowse && a.browseView.Editing() {
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			a.currentView = a.previousView
		} else {
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) {
			a.currentView = a.previousView
		}
		return a, nil
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewBrowse:
		return a.browseView.View()
	default:
		return a.browseView.View()
	}
}

// viewHelp renders the full keybinding list.
func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Keybindings"),
		"",
		a.help.View(a.keymap),
		"",
		a.styles.Muted.Render("[esc] back"),
	)
}

// Program creates a Bubbletea program for the app. Hosts use it when they
// need to send messages from outside, e.g. after a background reload.
func (a *App) Program(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Browse returns the browse view.
func (a *App) Browse() *browse.View {
	return a.browseView
}

// Detail returns the detail view.
func (a *App) Detail() *detail.View {
	return a.detailView
}

// Err returns the last error shown by the browser.
func (a *App) Err() error {
	return a.browseView.Err()
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
