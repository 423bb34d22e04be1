package team

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	teamservice "github.com/thenoetrevino/clubhouse/internal/services/team"
)

// UpdateCmd returns the team update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <team-id>",
		Short: "Update a team",
		Long: "Update one or more team fields. Fields that are not given keep their stored value; " +
			"the whole record is validated and written in one transaction.",
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New team name")
	cmd.Flags().String("wealth", "", "New wealth, a whole number")
	cmd.Flags().String("found-year", "", "New founding year")
	cmd.Flags().String("location", "", "New location")
	cmd.Flags().String("supporters", "", "New supporter count")
	cmd.Flags().String("stadium", "", "New stadium name")
	cmd.Flags().String("nickname", "", "New nickname, empty to clear")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	teamID, err := cli.ParseID("team", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	current, err := findTeam(cliInstance.App, teamID)
	if err != nil {
		return formatter.Fail(err)
	}

	in := teamservice.InputFrom(current)
	changed := cli.StringFlags(cmd, map[string]*string{
		"name":       &in.Name,
		"wealth":     &in.Wealth,
		"found-year": &in.FoundYear,
		"location":   &in.Location,
		"supporters": &in.Supporters,
		"stadium":    &in.Stadium,
		"nickname":   &in.Nickname,
	})
	if !changed {
		return formatter.FailWithSuggestion(
			fmt.Errorf("nothing to update: %w", cli.ErrUsage),
			"Pass at least one of --name, --wealth, --found-year, --location, --supporters, --stadium or --nickname")
	}

	if err := cliInstance.App.SaveTeam(ctx, teamID, in); err != nil {
		return formatter.Fail(err)
	}

	updated, err := findTeam(cliInstance.App, teamID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", updated.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"team":    updated,
		})
	}

	formatter.Printf("Updated team %d: %s\n", updated.ID, updated.DisplayName())
	return nil
}
