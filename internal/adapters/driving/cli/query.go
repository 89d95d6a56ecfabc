package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

var (
	querySub      string
	queryTrait    string
	queryMin      string
	queryMax      string
	querySort     string
	queryDesc     bool
	queryLimit    int
	queryOffset   int
	queryCategory bool
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query <mainType> [text]",
	Short: "Filter and sort catalog records",
	Long: `Lists records of one main type (equipment, spells, skills), optionally
narrowed to a sub type, a name substring, a level range and a trait.

Results are sorted by level ascending unless --sort is given; equal keys
keep name order. Columns follow the schema of the selected scope.`,
	Example: `  grimoire query spells fire --min 1 --max 3
  grimoire query equipment --sub Armor --sort price --desc
  grimoire query skills --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVarP(&querySub, "sub", "s", "", "sub type within the main type")
	f.StringVarP(&queryTrait, "trait", "t", "", "only records with this trait")
	f.StringVar(&queryMin, "min", "", "minimum level (inclusive)")
	f.StringVar(&queryMax, "max", "", "maximum level (inclusive)")
	f.StringVar(&querySort, "sort", "", "attribute to sort by (default level)")
	f.BoolVar(&queryDesc, "desc", false, "sort descending")
	f.IntVarP(&queryLimit, "limit", "n", 0, "maximum number of rows (default from settings)")
	f.IntVar(&queryOffset, "offset", 0, "rows to skip")
	f.BoolVar(&queryCategory, "category", false, "also match text against the category")
	f.BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	q := domain.Query{
		Scope: domain.Scope{MainType: domain.MainType(args[0]), SubType: querySub},
		Filters: domain.Filters{
			Trait:         queryTrait,
			Levels:        domain.ParseLevelRange(queryMin, queryMax),
			MatchCategory: queryCategory,
		},
		Limit:  queryLimit,
		Offset: queryOffset,
	}
	if len(args) > 1 {
		q.Filters.Text = args[1]
	}
	if querySort != "" {
		q.Sort = domain.SortSpec{Key: querySort}
		if queryDesc {
			q.Sort.Direction = domain.Descending
		}
	}

	res, err := catalogService.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		printJSON(cmd, resultJSON(res))
		return nil
	}
	return outputQueryTable(cmd, res)
}

func resultJSON(res *domain.Result) map[string]any {
	records := make([]any, len(res.Records))
	for i, r := range res.Records {
		records[i] = r.Attributes()
	}
	return map[string]any{
		"scope":   res.Scope.String(),
		"total":   res.Total,
		"records": records,
	}
}

func outputQueryTable(cmd *cobra.Command, res *domain.Result) error {
	if len(res.Rows) == 0 {
		cmd.Println("No records found.")
		return nil
	}

	headers := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		headers[i] = c.Label
	}
	printTable(cmd, headers, res.Rows)
	cmd.Printf("%d of %d record(s) in %s\n", len(res.Rows), res.Total, res.Scope)
	return nil
}
