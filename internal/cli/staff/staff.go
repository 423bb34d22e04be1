package staff

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/roster"
)

// StaffCmd returns the staff parent command
func StaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Browse and edit staff",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())

	return cmd
}

// employer names the team a staff member works for
func employer(teams []*models.TeamRecord, s *models.StaffRecord) string {
	if s.TeamID == nil {
		return "unemployed"
	}
	if t, ok := roster.FindTeam(teams, *s.TeamID); ok {
		return t.Name
	}
	return "team " + strconv.Itoa(*s.TeamID)
}
