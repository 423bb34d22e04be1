package logo

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
)

// ReplaceCmd returns the logo replace subcommand
func ReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <team-id> <image>",
		Short: "Replace a team's logo",
		Long: "Decode a PNG, JPEG or GIF image, scale it into a transparent square " +
			"and store it as the team's logo.",
		Args: cobra.ExactArgs(2),
		RunE: runReplace,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runReplace(cmd *cobra.Command, args []string) error {
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	teamID, err := cli.ParseID("team", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if err := cliInstance.App.ReplaceLogo(teamID, args[1]); err != nil {
		return formatter.Fail(err)
	}
	path, err := cliInstance.App.LogoPath(teamID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"team_id": teamID,
			"path":    path,
		})
	}

	formatter.Printf("Replaced logo of team %d: %s\n", teamID, path)
	return nil
}
