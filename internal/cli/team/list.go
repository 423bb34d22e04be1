package team

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
)

// ListCmd returns the team list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		Long:  "List teams ordered by name. --search keeps the teams where any field contains the term, ignoring case.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().String("search", "", "Filter teams by a term")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	term, _ := cmd.Flags().GetString("search")
	teams := cliInstance.App.Search(term)
	leagues := cliInstance.App.Leagues()

	if formatter.Quiet {
		for _, t := range teams {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", t.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"search":  term,
			"teams":   teams,
		})
	}

	if len(teams) == 0 {
		formatter.Printf("No teams found\n")
		return nil
	}

	formatter.Printf("Found %d teams:\n\n", len(teams))
	for _, t := range teams {
		formatter.Printf("  [%d] %s - %s, wealth %s, %s supporters\n",
			t.ID, t.DisplayName(), leagues.Name(t.LeagueID), cli.Count(t.Wealth), cli.Count(t.SupporterCount))
	}

	return nil
}
