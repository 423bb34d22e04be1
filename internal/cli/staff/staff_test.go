package staff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clubcli "github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
	"github.com/thenoetrevino/clubhouse/internal/testutil/cli"
)

func TestListStaff(t *testing.T) {
	session := cli.SetupCLITest(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"everyone by name", []string{"--quiet"}, "1\n2\n3\n4\n"},
		{"one team", []string{"--team", "1", "--quiet"}, "1\n2\n"},
		{"search", []string{"--search", "CA", "--quiet"}, "3\n"},
		{"search within team", []string{"--search", "a", "--team", "2", "--quiet"}, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cli.ExecuteCLICommand(t, session, ListCmd(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}

	t.Run("human readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ListCmd())
		require.NoError(t, err)
		assert.Contains(t, output, "Found 4 staff")
		assert.Contains(t, output, "Red FC")
		assert.Contains(t, output, "unemployed")
	})
}

func TestShowStaff(t *testing.T) {
	session := cli.SetupCLITest(t)

	t.Run("json carries the decoded rating", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "2", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		member := result["staff"].(map[string]interface{})
		assert.Equal(t, "Bob", member["name"])
		assert.Equal(t, float64(90), member["ability"])
		assert.Equal(t, float64(1), member["team_id"])
	})

	t.Run("malformed descriptor reads as zero", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "4")
		require.NoError(t, err)
		assert.Contains(t, output, "Dev")
		assert.Contains(t, output, "unemployed")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, ShowCmd(), "40")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitNotFound, clubcli.ExitCode(err))
	})
}

func TestUpdateStaff(t *testing.T) {
	session := cli.SetupCLITest(t)
	path := session.App.DatabasePath()

	t.Run("ability keeps other descriptor keys", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "2", "--ability", "60")
		require.NoError(t, err)
		assert.Contains(t, output, "Updated staff 2: Bob (ability 60, fame 20)")

		row := testutil.Dump(t, path)["Staff"][1]
		var descriptor map[string]float64
		require.NoError(t, json.Unmarshal([]byte(row[2]), &descriptor))
		assert.Equal(t, map[string]float64{"rawAbility": 60, "potential": 95}, descriptor)
	})

	t.Run("negative fame writes nothing", func(t *testing.T) {
		before := testutil.Dump(t, path)

		_, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "3", "--fame=-1")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitValidation, clubcli.ExitCode(err))
		assert.Equal(t, before, testutil.Dump(t, path))
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "1")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitUsage, clubcli.ExitCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, session, UpdateCmd(), "99", "--name", "Nobody")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitNotFound, clubcli.ExitCode(err))
	})
}
