package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

var facetsSub string

var facetsCmd = &cobra.Command{
	Use:   "facets [mainType]",
	Short: "List sub types and traits",
	Long: `Shows the sub types of a main type and the traits carried by its
records. Without a main type, lists the main types and every trait.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacets,
}

func init() {
	facetsCmd.Flags().StringVarP(&facetsSub, "sub", "s", "", "narrow traits to one sub type")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	scope := domain.Scope{SubType: facetsSub}
	if len(args) == 1 {
		scope.MainType = domain.MainType(args[0])
	}
	f, err := catalogService.Facets(ctx, scope)
	if err != nil {
		return fmt.Errorf("facets failed: %w", err)
	}

	if scope.MainType == "" {
		types := catalogService.Taxonomy().MainTypes()
		names := make([]string, len(types))
		for i, mt := range types {
			names[i] = mt.String()
		}
		cmd.Printf("Main types: %s\n", strings.Join(names, ", "))
	} else {
		cmd.Printf("Sub types: %s\n", joinOrNone(f.SubTypes))
	}
	cmd.Printf("Traits: %s\n", joinOrNone(f.Traits))
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
