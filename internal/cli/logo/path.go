package logo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
)

// PathCmd returns the logo path subcommand
func PathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <team-id>",
		Short: "Print where a team's logo is stored",
		Args:  cobra.ExactArgs(1),
		RunE:  runPath,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runPath(cmd *cobra.Command, args []string) error {
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	teamID, err := cli.ParseID("team", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	path, err := cliInstance.App.LogoPath(teamID)
	if err != nil {
		return formatter.Fail(err)
	}
	_, exists := cliInstance.App.LoadLogo(teamID)

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"path":    path,
			"exists":  exists,
		})
	}

	if !exists && !formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (no logo yet)\n", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
