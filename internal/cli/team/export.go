package team

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
)

// ExportCmd returns the team export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every team to CSV",
		Long:  "Write all teams to a CSV file. The header language follows csv.locale in the configuration.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().String("out", "", "Destination CSV file (required)")
	if err := cmd.MarkFlagRequired("out"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	out, _ := cmd.Flags().GetString("out")
	if err := cliInstance.App.ExportCSV(ctx, out); err != nil {
		return formatter.Fail(err)
	}
	count := len(cliInstance.App.Teams())

	if formatter.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"path":    out,
			"teams":   count,
		})
	}

	formatter.Printf("Exported %d teams to %s\n", count, out)
	return nil
}
