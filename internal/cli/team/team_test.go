package team

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clubcli "github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
	"github.com/thenoetrevino/clubhouse/internal/testutil/cli"
)

func TestListTeams(t *testing.T) {
	session := cli.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ListCmd())
		require.NoError(t, err)
		assert.Contains(t, output, "Found 3 teams")
		assert.Contains(t, output, "[1] Red FC (The Reds) - Premier, wealth 100, 50,000 supporters")
		assert.Contains(t, output, "[3] Athletic Club (Lions) - Unknown league")
		assert.Less(t, strings.Index(output, "Athletic Club"), strings.Index(output, "Blue Rovers"))
		assert.Less(t, strings.Index(output, "Blue Rovers"), strings.Index(output, "Red FC"))
	})

	t.Run("quiet prints ids in name order", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ListCmd(), "--quiet")
		require.NoError(t, err)
		assert.Equal(t, "3\n2\n1\n", output)
	})

	t.Run("search", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ListCmd(), "--search", "BRISTOL", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		teams := result["teams"].([]interface{})
		require.Len(t, teams, 1)
		assert.Equal(t, "Blue Rovers", teams[0].(map[string]interface{})["name"])
	})

	t.Run("no match", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ListCmd(), "--search", "zzz")
		require.NoError(t, err)
		assert.Contains(t, output, "No teams found")
	})
}

func TestShowTeam(t *testing.T) {
	session := cli.SetupCLITest(t)

	t.Run("with staff", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "1")
		require.NoError(t, err)
		assert.Contains(t, output, "Red FC (The Reds)")
		assert.Contains(t, output, "Premier")
		assert.Contains(t, output, "50,000")
		assert.Contains(t, output, "Anfield Road")
		assert.Contains(t, output, "Staff (2)")
		assert.Contains(t, output, "Alice")
		assert.Contains(t, output, "Bob")
		assert.NotContains(t, output, "Cara")
		assert.Equal(t, 1, session.App.CurrentTeamID())
	})

	t.Run("unknown league", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "3")
		require.NoError(t, err)
		assert.Contains(t, output, "Unknown league")
		assert.Contains(t, output, "No staff employed")
	})

	t.Run("json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "2", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		team := result["team"].(map[string]interface{})
		assert.Equal(t, "Championship", team["league"])
		staff := team["staff"].([]interface{})
		require.Len(t, staff, 1)
		assert.Equal(t, float64(85), staff[0].(map[string]interface{})["ability"])
	})

	t.Run("missing team", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "99")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitNotFound, clubcli.ExitCode(err))
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "abc")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitValidation, clubcli.ExitCode(err))
	})
}

func TestUpdateTeam(t *testing.T) {
	session := cli.SetupCLITest(t)
	path := session.App.DatabasePath()

	t.Run("changes only the given fields", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "1", "--name", "  Red United ", "--supporters", "51000")
		require.NoError(t, err)
		assert.Contains(t, output, "Updated team 1: Red United (The Reds)")

		row := testutil.Dump(t, path)["Teams"][0]
		assert.Equal(t, []string{"1", "Red United", "100", "1892", "Liverpool", "51000", "Anfield Road", "The Reds", "1"}, row)
	})

	t.Run("clears the nickname", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "1", "--nickname", "", "--quiet")
		require.NoError(t, err)
		assert.Equal(t, "1\n", output)

		row := testutil.Dump(t, path)["Teams"][0]
		assert.Equal(t, "", row[7])
	})

	t.Run("invalid value writes nothing", func(t *testing.T) {
		before := testutil.Dump(t, path)

		output, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "2", "--name", "Bristol", "--wealth", "lots", "--json")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitValidation, clubcli.ExitCode(err))

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "VALIDATION_ERROR", result["error"].(map[string]interface{})["code"])
		assert.Equal(t, before, testutil.Dump(t, path))
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "1")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitUsage, clubcli.ExitCode(err))
	})

	t.Run("missing team", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "42", "--name", "Ghosts")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitNotFound, clubcli.ExitCode(err))
	})
}

func TestExportTeams(t *testing.T) {
	session := cli.SetupCLITest(t)
	out := filepath.Join(t.TempDir(), "teams.csv")

	output, err := cli.ExecuteCLICommand(t, session, ExportCmd(), "--out", out, "--json")
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	assert.Equal(t, float64(3), result["teams"])
	assert.Equal(t, out, result["path"])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Team Name,Wealth (10k),Founded,Location,Supporters,Stadium,Nickname,League ID", lines[0])
	assert.Equal(t, "3,Athletic Club,60,1898,Bilbao,40000,San Mames,Lions,9", lines[1])
}

func TestExportTeamsRequiresOut(t *testing.T) {
	session := cli.SetupCLITest(t)

	_, err := cli.ExecuteCLICommand(t, session, ExportCmd())
	require.Error(t, err)
}
