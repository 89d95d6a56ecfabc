// Package detail provides the record detail view for the TUI.
package detail

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/services"
)

// View shows every field of one record as rendered markdown.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	statusbar *status.Bar
	taxonomy  *domain.Taxonomy

	record   *domain.Record
	markdown string
	width    int
	height   int
}

// NewView creates a detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, taxonomy *domain.Taxonomy) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if taxonomy == nil {
		taxonomy = domain.DefaultTaxonomy()
	}
	sb := status.NewBar(s, km)
	sb.SetState(status.StateDetail)

	v := &View{
		styles:    s,
		keymap:    km,
		viewport:  viewport.New(80, 23),
		statusbar: sb,
		taxonomy:  taxonomy,
	}
	v.SetDimensions(80, 24)
	return v
}

// SetRecord shows a record and scrolls to the top.
func (v *View) SetRecord(r domain.Record) {
	v.record = &r
	v.markdown = services.RecordMarkdown(r, v.taxonomy)
	v.statusbar.SetMessage(r.Name)
	v.render()
	v.viewport.GotoTop()
}

// Record returns the displayed record, or nil.
func (v *View) Record() *domain.Record { return v.record }

func (v *View) render() {
	if v.record == nil {
		v.viewport.SetContent("")
		return
	}
	v.viewport.SetContent(renderMarkdown(v.markdown, v.width))
}

// renderMarkdown styles markdown for the terminal, falling back to the
// raw text when glamour cannot render it.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Update handles scrolling and navigation back to the browser.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewBrowse} }
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the record and the status bar.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, v.viewport.View(), v.statusbar.View())
}

// SetDimensions sets the view dimensions and re-wraps the content.
func (v *View) SetDimensions(width, height int) {
	resized := width != v.width
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-1, 1)
	v.statusbar.SetWidth(width)
	if resized {
		v.render()
	}
}

// Markdown returns the unrendered markdown of the displayed record.
func (v *View) Markdown() string { return v.markdown }

// ScrollPercent reports how far the viewport is scrolled.
func (v *View) ScrollPercent() float64 { return v.viewport.ScrollPercent() }
