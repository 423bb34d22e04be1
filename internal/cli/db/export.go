package db

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/storage"
)

// ExportCmd returns the db export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the database file",
		Long: "Write a consistent copy of the open database. Without --out the copy is named " +
			"CFS_Teams_Export_<timestamp>.db next to the source. --upload also sends the copy " +
			"to the configured backup bucket.",
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().String("out", "", "Destination file")
	cmd.Flags().Bool("upload", false, "Upload the copy to the backup bucket")
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
	upload, _ := cmd.Flags().GetBool("upload")

	written, err := cliInstance.App.ExportDatabase(ctx, out)
	if err != nil {
		return formatter.Fail(err)
	}

	var uploaded *storage.UploadResult
	if upload {
		uploaded, err = cliInstance.App.PublishExport(ctx, written)
		if errors.Is(err, storage.ErrNotConfigured) {
			return formatter.FailWithSuggestion(err, "Set CLUBHOUSE_BACKUP_BUCKET and credentials, or backup.bucket in the config file")
		}
		if err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), written)
		return nil
	}

	if formatter.JSON {
		result := map[string]interface{}{
			"success": true,
			"path":    written,
		}
		if uploaded != nil {
			result["upload"] = uploaded
		}
		return formatter.WriteJSON(result)
	}

	formatter.Printf("Exported database to %s\n", written)
	if uploaded != nil {
		formatter.Printf("Uploaded as %s\n", uploaded.Key)
		if uploaded.Location != "" {
			formatter.Printf("Public URL: %s\n", uploaded.Location)
		}
	}
	return nil
}
