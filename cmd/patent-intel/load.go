package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intel/internal/loader"
	"github.com/pdiddy/patent-intel/internal/snowflake"
	"github.com/pdiddy/patent-intel/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load competitor and technology patents into the Snowflake cache",
	Long: `Load resolves patent records for tracked competitors or technology areas
and generates one Snowflake MERGE statement per record. By default the SQL
is printed to stdout; with --execute each statement is also run through the
snow CLI.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("company", "", "load patents for one company")
	loadCmd.Flags().String("technology", "", "load patents for one technology keyword")
	loadCmd.Flags().Bool("all-competitors", false, "load patents for every tracked competitor")
	loadCmd.Flags().Bool("all-technologies", false, "load patents for every tracked technology area")
	loadCmd.Flags().Int("limit", 20, "maximum records per search term")
	loadCmd.Flags().Bool("execute", false, "execute generated statements via the snow CLI")
	loadCmd.Flags().Bool("create-table", false, "print (or execute) the cache table DDL first")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	company, _ := cmd.Flags().GetString("company")
	technology, _ := cmd.Flags().GetString("technology")
	allCompetitors, _ := cmd.Flags().GetBool("all-competitors")
	allTechnologies, _ := cmd.Flags().GetBool("all-technologies")
	limit, _ := cmd.Flags().GetInt("limit")
	execute, _ := cmd.Flags().GetBool("execute")
	createTable, _ := cmd.Flags().GetBool("create-table")

	set := 0
	if company != "" {
		set++
	}
	if technology != "" {
		set++
	}
	if allCompetitors {
		set++
	}
	if allTechnologies {
		set++
	}
	if set != 1 && !createTable {
		return fmt.Errorf("provide exactly one of --company, --technology, --all-competitors, or --all-technologies")
	}

	l := &loader.Loader{
		Resolver: newResolver(false, false),
		Out:      os.Stderr,
	}
	if execute {
		l.Runner = snowflake.NewRunner(types.SnowflakeConfig{Timeout: viper.GetDuration("snowflake.timeout")}, os.Stderr)
	}

	ctx := cmd.Context()

	if createTable {
		ddl := snowflake.CreateTableSQL()
		if l.Runner != nil {
			if _, ok := l.Runner.Execute(ctx, ddl); !ok {
				return fmt.Errorf("creating cache table failed")
			}
			color.Green("Cache table ready")
		} else {
			fmt.Println(ddl)
		}
		if set == 0 {
			return nil
		}
	}

	var total int
	switch {
	case company != "":
		total = printStatements(l.LoadCompetitorPatents(ctx, company, limit), execute)
	case technology != "":
		total = printStatements(l.LoadTechnologyPatents(ctx, technology, limit), execute)
	case allCompetitors:
		for _, stmts := range l.LoadAllCompetitors(ctx, limit) {
			total += printStatements(stmts, execute)
		}
	case allTechnologies:
		for _, stmts := range l.LoadAllTechnologies(ctx, limit) {
			total += printStatements(stmts, execute)
		}
	}

	if execute {
		color.Green("Executed %d upsert statements", total)
	} else {
		color.Cyan("Generated %d upsert statements (use --execute to run them)", total)
	}
	return nil
}

// printStatements writes generated SQL to stdout unless it was already
// executed, and returns the statement count.
func printStatements(stmts []string, executed bool) int {
	if !executed {
		for _, s := range stmts {
			fmt.Println(s)
			fmt.Println()
		}
	}
	return len(stmts)
}
