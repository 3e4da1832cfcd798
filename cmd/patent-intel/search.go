package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-intel/internal/search"
	"github.com/pdiddy/patent-intel/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search patent records by assignee, title, number, or CPC code",
	Long: `Search resolves patent records through tiered sources: USPTO Open Data
Portal first, Google Patents as fallback, then a built-in sample table so
the command always produces output. CPC searches take a separate precision
path through the BigQuery public patents dataset via the bq CLI.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("assignee", "", "search by assignee (company) name")
	searchCmd.Flags().String("title", "", "search by title/abstract keywords")
	searchCmd.Flags().String("patent", "", "look up a single patent by number")
	searchCmd.Flags().String("cpc", "", "search by CPC classification prefix (uses BigQuery)")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("no-uspto", false, "skip the USPTO tier")
	searchCmd.Flags().Bool("no-google", false, "skip the Google Patents tier")
	searchCmd.Flags().String("country", "", "country code for CPC search (default US)")
	searchCmd.Flags().String("min-grant-date", "", "minimum grant date for CPC search (YYYYMMDD)")
	searchCmd.Flags().String("assignee-filter", "", "assignee substring filter for CPC search")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	assignee, _ := cmd.Flags().GetString("assignee")
	title, _ := cmd.Flags().GetString("title")
	patentNumber, _ := cmd.Flags().GetString("patent")
	cpc, _ := cmd.Flags().GetString("cpc")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	set := 0
	for _, v := range []string{assignee, title, patentNumber, cpc} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("provide exactly one of --assignee, --title, --patent, or --cpc")
	}

	ctx := cmd.Context()
	var patents []types.Patent

	switch {
	case cpc != "":
		country, _ := cmd.Flags().GetString("country")
		minGrantDate, _ := cmd.Flags().GetString("min-grant-date")
		assigneeFilter, _ := cmd.Flags().GetString("assignee-filter")

		searcher := search.NewCPCSearcher(types.BigQueryConfig{Country: country}, os.Stderr)
		patents = searcher.SearchByCPC(ctx, cpc, search.CPCOptions{
			Limit:          limit,
			MinGrantDate:   minGrantDate,
			AssigneeFilter: assigneeFilter,
		})
	case patentNumber != "":
		noUSPTO, _ := cmd.Flags().GetBool("no-uspto")
		noGoogle, _ := cmd.Flags().GetBool("no-google")
		if p := newResolver(noUSPTO, noGoogle).GetPatent(ctx, patentNumber); p != nil {
			patents = []types.Patent{*p}
		}
	default:
		noUSPTO, _ := cmd.Flags().GetBool("no-uspto")
		noGoogle, _ := cmd.Flags().GetBool("no-google")
		resolver := newResolver(noUSPTO, noGoogle)
		if assignee != "" {
			patents = resolver.SearchByAssignee(ctx, assignee, limit)
		} else {
			patents = resolver.SearchByTitle(ctx, title, limit)
		}
	}

	if asJSON {
		return search.FormatJSON(patents, os.Stdout)
	}
	search.FormatTable(patents, os.Stdout)
	return nil
}
