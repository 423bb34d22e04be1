package staff

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	staffservice "github.com/thenoetrevino/clubhouse/internal/services/staff"
)

// UpdateCmd returns the staff update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <staff-id>",
		Short: "Update a staff member",
		Long: "Update name, ability or fame. Only the rating inside the ability descriptor " +
			"is replaced; any other descriptor keys are kept.",
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("ability", "", "New ability rating")
	cmd.Flags().String("fame", "", "New fame")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewOutputFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	staffID, err := cli.ParseID("staff", args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	current, err := cliInstance.App.StaffMember(staffID)
	if err != nil {
		return formatter.Fail(err)
	}

	in := staffservice.InputFrom(current)
	changed := cli.StringFlags(cmd, map[string]*string{
		"name":    &in.Name,
		"ability": &in.Ability,
		"fame":    &in.Fame,
	})
	if !changed {
		return formatter.FailWithSuggestion(
			fmt.Errorf("nothing to update: %w", cli.ErrUsage),
			"Pass at least one of --name, --ability or --fame")
	}

	if err := cliInstance.App.SaveStaff(ctx, staffID, in); err != nil {
		return formatter.Fail(err)
	}

	updated, err := cliInstance.App.StaffMember(staffID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", updated.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.WriteJSON(map[string]interface{}{
			"success": true,
			"staff":   updated,
		})
	}

	formatter.Printf("Updated staff %d: %s (ability %d, fame %s)\n",
		updated.ID, updated.Name, updated.Ability(), cli.Count(updated.Fame))
	return nil
}
