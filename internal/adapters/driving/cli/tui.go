package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui"
	"github.com/custodia-labs/grimoire/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// TUIConfig holds options for the TUI command.
type TUIConfig struct {
	// QueryLimit caps rows per query. Zero uses query.limit from settings.
	QueryLimit int

	// ProgramOptions are appended to the Bubbletea program options.
	ProgramOptions []tea.ProgramOption
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive catalog browser",
	Long: `Launch the interactive terminal catalog browser.

Controls:
  tab      - Next main type
  s / t    - Cycle sub type / trait
  /        - Filter by name
  l        - Level range (min-max)
  c        - Also match text against the category
  1-9      - Sort by column (again to reverse)
  ↑/k, ↓/j - Navigate records
  Enter    - Show record details
  r        - Reload the catalog
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "reload the catalog when the source changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	ports := tui.NewPorts(catalogService)
	ports.QueryLimit = tuiQueryLimit()

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	var opts []tea.ProgramOption
	if tuiConfig != nil {
		opts = tuiConfig.ProgramOptions
	}
	p := app.Program(opts...)

	// Log lines would tear the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(cmd.ErrOrStderr())

	onReload := func(report *domain.LoadReport, err error) {
		p.Send(messages.CatalogReloaded{Report: report, Err: err})
	}
	return runWithWatch(ctx, tuiWatch, onReload, func(context.Context) error {
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}

func tuiQueryLimit() int {
	if tuiConfig != nil && tuiConfig.QueryLimit > 0 {
		return tuiConfig.QueryLimit
	}
	if settingsService != nil {
		if st, err := settingsService.Get(); err == nil {
			return st.Query.Limit
		}
	}
	return 0
}
