// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/styles"
)

// FilterInput wraps a bubbles textinput with a label. It starts blurred;
// the browse view focuses it when the user starts editing.
type FilterInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewFilterInput creates a labelled filter input.
func NewFilterInput(s *styles.Styles, label, placeholder string) *FilterInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 30

	return &FilterInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     30,
	}
}

// Update forwards messages to the underlying textinput.
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *FilterInput) View() string {
	label := f.styles.Muted.Render(f.label + ": ")
	if f.Focused() {
		label = f.styles.Title.Render(f.label + ": ")
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.textinput.View())
}

// Value returns the current input value.
func (f *FilterInput) Value() string { return f.textinput.Value() }

// SetValue sets the input value.
func (f *FilterInput) SetValue(value string) { f.textinput.SetValue(value) }

// Focus sets focus on the input.
func (f *FilterInput) Focus() tea.Cmd { return f.textinput.Focus() }

// Blur removes focus from the input.
func (f *FilterInput) Blur() { f.textinput.Blur() }

// Focused returns whether the input is focused.
func (f *FilterInput) Focused() bool { return f.textinput.Focused() }

// SetWidth sets the width of the input, label included.
func (f *FilterInput) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FilterInput) Width() int { return f.width }

// Reset clears the input.
func (f *FilterInput) Reset() { f.textinput.Reset() }
