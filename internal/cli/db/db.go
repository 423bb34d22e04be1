package db

import (
	"github.com/spf13/cobra"
)

// DBCmd returns the db parent command
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and back up the database file",
	}

	cmd.AddCommand(InfoCmd())
	cmd.AddCommand(ExportCmd())

	return cmd
}
