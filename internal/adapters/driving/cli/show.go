package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/services"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Show every field of a record",
	Long: `Prints the full detail view of one record. Record IDs are listed by
'grimoire query --json'.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the record as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	rec, err := catalogService.Record(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("record %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if showJSON {
		printJSON(cmd, rec.Attributes())
		return nil
	}

	md := services.RecordMarkdown(*rec, catalogService.Taxonomy())
	out := cmd.OutOrStdout()
	if width, ok := terminalWidth(out); ok {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				fmt.Fprint(out, rendered)
				return nil
			}
		}
	}
	fmt.Fprint(out, md)
	return nil
}
