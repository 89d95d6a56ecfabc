package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

var loadJSON bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the catalog and report diagnostics",
	Long: `Reads the manifest and every listed document, then prints per main type
record counts and every item or document that was skipped.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	report, err := catalogService.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if loadJSON {
		printJSON(cmd, reportJSON(report))
		return nil
	}

	cmd.Printf("Loaded %d record(s) from %d document(s) in %s\n",
		report.Records, len(report.Documents), report.Duration().Round(time.Millisecond))
	for _, mt := range catalogService.Taxonomy().MainTypes() {
		cmd.Printf("  %-10s %d\n", mt.Label(), report.Counts[mt])
	}

	if len(report.Diagnostics) == 0 {
		return nil
	}
	cmd.Println()
	cmd.Printf("Diagnostics (%d):\n", len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		cmd.Printf("  %s\n", d)
	}
	return nil
}

func reportJSON(r *domain.LoadReport) map[string]any {
	counts := make(map[string]any, len(r.Counts))
	for mt, n := range r.Counts {
		counts[mt.String()] = n
	}
	diags := make([]any, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		diags[i] = map[string]any{
			"kind":     string(d.Kind),
			"document": d.Document,
			"path":     d.Path,
			"key":      d.Key,
			"message":  d.Message,
		}
	}
	return map[string]any{
		"loadId":      r.LoadID,
		"records":     r.Records,
		"documents":   r.Documents,
		"counts":      counts,
		"diagnostics": diags,
	}
}
