package team

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/app"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/roster"
)

// TeamCmd returns the team parent command
func TeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Browse and edit teams",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(ExportCmd())

	return cmd
}

func findTeam(a *app.App, id int) (*models.TeamRecord, error) {
	t, ok := roster.FindTeam(a.Teams(), id)
	if !ok {
		return nil, fmt.Errorf("team %d: %w", id, models.ErrNotFound)
	}
	return t, nil
}
