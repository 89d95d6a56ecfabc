package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <db-path>",
	Short: "Export the catalog to a SQLite database",
	Long: `Loads the catalog and writes every record, its traits and the load
diagnostics to a SQLite database. Existing records in the database are
replaced in a single transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFunc == nil {
		return errors.New("export not configured")
	}
	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	n, err := exportFunc(ctx, args[0])
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Exported %d record(s) to %s\n", n, args[0])
	return nil
}
