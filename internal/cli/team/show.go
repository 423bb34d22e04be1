package team

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/app"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/cli/styles"
)

// ShowCmd returns the team show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <team-id>",
		Short: "Show a team and its staff",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	teamID, err := cli.ParseID("team", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	sel, err := cliInstance.App.SelectTeam(teamID)
	if err != nil {
		return formatter.FailWithSuggestion(err, "List teams with: clubhouse team list")
	}

	if formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", sel.Team.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"team":    sel,
		})
	}

	formatter.Printf("%s\n", styles.RenderCard(renderSelection(sel)))
	return nil
}

func renderSelection(sel *app.Selection) string {
	t := sel.Team
	lines := []string{
		styles.TitleStyle.Render(t.DisplayName()),
		styles.SubtitleStyle.Render(fmt.Sprintf("#%d, %s", t.ID, sel.League)),
		"",
		styles.RenderField("Wealth", cli.Count(t.Wealth)),
		styles.RenderField("Founded", strconv.Itoa(t.FoundYear)),
		styles.RenderField("Location", t.Location),
		styles.RenderField("Supporters", cli.Count(t.SupporterCount)),
		styles.RenderField("Stadium", t.StadiumName),
	}

	lines = append(lines, styles.SectionStyle.Render(fmt.Sprintf("Staff (%d)", len(sel.Staff))))
	if len(sel.Staff) == 0 {
		lines = append(lines, styles.SubtitleStyle.Render("No staff employed"))
	}
	for _, s := range sel.Staff {
		ability := s.Ability()
		lines = append(lines, fmt.Sprintf("  [%d] %s  ability %s  fame %s",
			s.ID, s.Name, styles.RenderAbility(strconv.Itoa(ability), ability), cli.Count(s.Fame)))
	}

	if sel.Staged != nil {
		lines = append(lines, "", styles.WarningStyle.Render("Unsaved edits pending"))
	}

	return strings.Join(lines, "\n")
}
