package logo

import (
	"github.com/spf13/cobra"
)

// LogoCmd returns the logo parent command
func LogoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Manage team logos",
		Long:  "Team logos are square PNG files named L<team-id>.png next to the database file.",
	}

	cmd.AddCommand(PathCmd())
	cmd.AddCommand(ReplaceCmd())

	return cmd
}
