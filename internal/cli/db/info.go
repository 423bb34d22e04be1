package db

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/cli/styles"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// InfoCmd returns the db info subcommand
func InfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize the open database",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	a := cliInstance.App
	path := a.DatabasePath()
	st, err := os.Stat(path)
	if err != nil {
		return formatter.Fail(&models.IOError{Op: "stat", Path: path, Err: err})
	}

	leagues := a.Leagues()
	teams := a.Teams()
	staff := a.Staff()

	if formatter.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"database": map[string]interface{}{
				"path":        path,
				"size_bytes":  st.Size(),
				"modified_at": st.ModTime(),
				"leagues":     leagues,
				"teams":       len(teams),
				"staff":       len(staff),
			},
		})
	}

	formatter.Printf("%s\n", styles.TitleStyle.Render(path))
	formatter.Printf("%s\n", styles.RenderField("Size", humanize.Bytes(uint64(st.Size()))))
	formatter.Printf("%s\n", styles.RenderField("Modified", humanize.Time(st.ModTime())))
	formatter.Printf("%s\n", styles.RenderField("Leagues", cli.Count(len(leagues))))
	formatter.Printf("%s\n", styles.RenderField("Teams", cli.Count(len(teams))))
	formatter.Printf("%s\n", styles.RenderField("Staff", cli.Count(len(staff))))
	return nil
}
