package staff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/cli/styles"
)

// ShowCmd returns the staff show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <staff-id>",
		Short: "Show a staff member",
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

	staffID, err := cli.ParseID("staff", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	member, err := cliInstance.App.StaffMember(staffID)
	if err != nil {
		return formatter.FailWithSuggestion(err, "List staff with: clubhouse staff list")
	}

	if formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", member.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"staff":   member,
		})
	}

	ability := member.Ability()
	card := strings.Join([]string{
		styles.TitleStyle.Render(member.Name),
		styles.SubtitleStyle.Render(fmt.Sprintf("#%d, %s", member.ID, employer(cliInstance.App.Teams(), member))),
		"",
		styles.LabelStyle.Render("Ability:") + " " + styles.RenderAbility(strconv.Itoa(ability), ability),
		styles.RenderField("Fame", cli.Count(member.Fame)),
	}, "\n")
	formatter.Printf("%s\n", styles.RenderCard(card))
	return nil
}
