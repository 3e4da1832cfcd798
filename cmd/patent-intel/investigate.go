package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intel/internal/snowflake"
	"github.com/pdiddy/patent-intel/internal/workflow"
	"github.com/pdiddy/patent-intel/pkg/types"
)

var investigateCmd = &cobra.Command{
	Use:   "investigate <request>",
	Short: "Run an audited analysis session for a research request",
	Long: `Investigate runs a full analysis session: it creates a session directory,
generates (and optionally executes) the Snowflake cache query, resolves
fresh records through the tiered sources, logs every step to numbered
markdown files, and writes a final report. The directory is the audit
trail for the request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInvestigate,
}

func init() {
	investigateCmd.Flags().String("ticket", "", "Jira ticket key to name the session after")
	investigateCmd.Flags().String("ticket-url", "", "Jira ticket URL recorded in the session metadata")
	investigateCmd.Flags().String("base-dir", "", "session base directory (default: analysis)")
	investigateCmd.Flags().Int("limit", 20, "maximum records to resolve")
	investigateCmd.Flags().Bool("assignee", false, "treat the request as an assignee name instead of keywords")
	investigateCmd.Flags().Bool("execute", false, "execute the cache query via the snow CLI")

	rootCmd.AddCommand(investigateCmd)
}

func runInvestigate(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")
	ticket, _ := cmd.Flags().GetString("ticket")
	ticketURL, _ := cmd.Flags().GetString("ticket-url")
	baseDir, _ := cmd.Flags().GetString("base-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	byAssignee, _ := cmd.Flags().GetBool("assignee")
	execute, _ := cmd.Flags().GetBool("execute")

	if baseDir == "" {
		baseDir = viper.GetString("workflow.base_dir")
	}

	session, err := workflow.New(request, workflow.Options{
		JiraTicket: ticket,
		JiraURL:    ticketURL,
		BaseDir:    baseDir,
	})
	if err != nil {
		return err
	}
	color.Cyan("Session %s started in %s", session.ID(), session.Dir())

	ctx := cmd.Context()
	status := workflow.StatusComplete

	// Cache first: generate the Snowflake lookup and log it, executing
	// when requested.
	kind := "keyword"
	if byAssignee {
		kind = "assignee"
	}
	cacheQuery := snowflake.SearchQuery(kind, request, limit)
	if execute {
		runner := snowflake.NewRunner(types.SnowflakeConfig{Timeout: viper.GetDuration("snowflake.timeout")}, os.Stderr)
		if out, ok := runner.Execute(ctx, cacheQuery); ok {
			fmt.Print(out)
		} else {
			status = workflow.StatusPartial
		}
	}
	if err := session.LogSnowflakeQuery("cache lookup", cacheQuery, nil); err != nil {
		return err
	}

	// Fresh records through the tiered sources.
	resolver := newResolver(false, false)
	var patents []types.Patent
	if byAssignee {
		patents = resolver.SearchByAssignee(ctx, request, limit)
	} else {
		patents = resolver.SearchByTitle(ctx, request, limit)
	}
	if err := session.LogAPICall("tiered resolver", request, workflow.Items(patents)); err != nil {
		return err
	}

	// Upserts to refresh the cache with what the resolver found.
	var upserts []string
	for _, p := range patents {
		stmt, err := snowflake.UpsertQuery(p, request, "investigation")
		if err != nil {
			continue
		}
		upserts = append(upserts, stmt)
	}
	if len(upserts) > 0 {
		if err := session.LogSnowflakeQuery("cache refresh upserts", strings.Join(upserts, "\n\n"), workflow.Items(patents)); err != nil {
			return err
		}
	}

	assignees := map[string]bool{}
	for _, p := range patents {
		if p.Assignee != "" {
			assignees[p.Assignee] = true
		}
	}
	if err := session.LogAnalysis("result summary", map[string]any{
		"total_patents":    len(patents),
		"unique_assignees": len(assignees),
		"upserts":          len(upserts),
		"search_mode":      kind,
	}); err != nil {
		return err
	}

	analysis := fmt.Sprintf("Resolved %d patents across %d assignees for %q.",
		len(patents), len(assignees), request)
	report := workflow.GenerateReport("Patent Analysis: "+request, patents, analysis)
	if err := session.WriteReport(report); err != nil {
		return err
	}

	if len(patents) == 0 && status == workflow.StatusComplete {
		status = workflow.StatusPartial
	}
	dir, err := session.Finalize(status)
	if err != nil {
		return err
	}

	if status == workflow.StatusComplete {
		color.Green("Session complete: %s", dir)
	} else {
		color.Yellow("Session finished with status %s: %s", status, dir)
	}
	return nil
}
