package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intel/internal/snowflake"
	"github.com/pdiddy/patent-intel/pkg/types"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Generate a filing-trend query over the cached patents",
	Long: `Trends generates an aggregation of patent counts by assignee and filing
year over a rolling window, optionally restricted to one technology keyword.
The SQL is printed to stdout; with --execute it is run through the snow CLI.`,
	RunE: runTrends,
}

func init() {
	trendsCmd.Flags().Int("years", 5, "rolling window in years")
	trendsCmd.Flags().String("technology", "", "restrict to a technology keyword")
	trendsCmd.Flags().Bool("execute", false, "execute the query via the snow CLI")

	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	years, _ := cmd.Flags().GetInt("years")
	technology, _ := cmd.Flags().GetString("technology")
	execute, _ := cmd.Flags().GetBool("execute")

	query := snowflake.TrendsQuery(years, technology)
	if !execute {
		fmt.Println(query)
		return nil
	}

	runner := snowflake.NewRunner(types.SnowflakeConfig{Timeout: viper.GetDuration("snowflake.timeout")}, os.Stderr)
	out, ok := runner.Execute(cmd.Context(), query)
	fmt.Print(out)
	if !ok {
		return fmt.Errorf("trends query failed")
	}
	return nil
}
