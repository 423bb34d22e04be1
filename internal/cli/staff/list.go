package staff

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/cli/styles"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ListCmd returns the staff list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff",
		Long:  "List staff ordered by name, optionally narrowed to one team or a name search.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().String("search", "", "Filter by name")
	cmd.Flags().Int("team", 0, "Only staff employed by this team")
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
	staff := cliInstance.App.SearchStaff(term)
	if cmd.Flags().Changed("team") {
		teamID, _ := cmd.Flags().GetInt("team")
		staff = employedBy(staff, teamID)
	}

	if formatter.Quiet {
		for _, s := range staff {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", s.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"staff":   staff,
		})
	}

	if len(staff) == 0 {
		formatter.Printf("No staff found\n")
		return nil
	}

	teams := cliInstance.App.Teams()
	formatter.Printf("Found %d staff:\n\n", len(staff))
	for _, s := range staff {
		ability := s.Ability()
		formatter.Printf("  [%d] %s - ability %s, fame %s, %s\n",
			s.ID, s.Name, styles.RenderAbility(strconv.Itoa(ability), ability), cli.Count(s.Fame), employer(teams, s))
	}

	return nil
}

func employedBy(staff []*models.StaffRecord, teamID int) []*models.StaffRecord {
	out := make([]*models.StaffRecord, 0, len(staff))
	for _, s := range staff {
		if s.EmployedBy(teamID) {
			out = append(out, s)
		}
	}
	return out
}
